package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
)

// ProductQuery narrows the /gold listing. Zero value means "everything".
type ProductQuery struct {
	Category    string
	Featured    bool
	BestSelling bool
	Everyday    bool
}

func (q ProductQuery) values() url.Values {
	values := url.Values{}
	if q.Category != "" && q.Category != "all" {
		values.Set("category", q.Category)
	}
	if q.Featured {
		values.Set("featured", "true")
	}
	if q.BestSelling {
		values.Set("bestSelling", "true")
	}
	if q.Everyday {
		values.Set("everyday", "true")
	}
	return values
}

// GetProducts fetches the product list. The backend answers with one of
// three shapes (bare array, {"products": [...]}, or {"data": [...]}); all
// are normalized here, at the boundary, into a plain slice.
func (c *Client) GetProducts(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.endpoints.Products(), query.values(), nil, &raw); err != nil {
		return nil, err
	}
	products, err := decodeProductList(raw)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Int("count", len(products)).Str("category", query.Category).Msg("products fetched")
	return products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, c.endpoints.ProductDetail(id), nil, nil, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// decodeProductList normalizes the accepted product-list shapes into one
// canonical slice, or reports a decode error. Nothing downstream ever sees
// the envelope variants.
func decodeProductList(raw json.RawMessage) ([]models.Product, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	// Shape 1: bare array at the root.
	var list []models.Product
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	// Shapes 2 and 3: wrapped under "products" or "data".
	var envelope struct {
		Products []models.Product `json:"products"`
		Data     []models.Product `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Products != nil {
			return envelope.Products, nil
		}
		if envelope.Data != nil {
			return envelope.Data, nil
		}
	}

	return nil, fmt.Errorf("%w: product list", ErrUnexpectedShape)
}
