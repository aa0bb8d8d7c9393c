package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gosimple/slug"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
)

// GetCategories fetches the category list. Like the product list, the
// payload may be a bare array or wrapped under "data"; both are normalized
// here. Each category gets a locally derived slug for stable filter URLs.
func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.endpoints.Categories(), nil, nil, &raw); err != nil {
		return nil, err
	}

	categories, err := decodeCategoryList(raw)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Slug == "" {
			categories[i].Slug = slug.Make(categories[i].Name)
		}
	}
	return categories, nil
}

func decodeCategoryList(raw json.RawMessage) ([]models.Category, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []models.Category
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var envelope struct {
		Data []models.Category `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	return nil, fmt.Errorf("%w: category list", ErrUnexpectedShape)
}
