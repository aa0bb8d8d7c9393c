package backend

import (
	"context"
	"net/http"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
)

// AddToCart puts quantity units of a product into the user's cart.
func (c *Client) AddToCart(ctx context.Context, userID, productID string, quantity int) error {
	body := map[string]any{
		"userId":    userID,
		"productId": productID,
		"quantity":  quantity,
	}
	return c.do(ctx, http.MethodPost, c.endpoints.CartAdd(), nil, body, nil)
}

// GetCart fetches the user's cart.
func (c *Client) GetCart(ctx context.Context, userID string) (models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodGet, c.endpoints.Cart(userID), nil, nil, &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// UpdateCartItem sets the quantity of one cart line.
func (c *Client) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) error {
	body := map[string]int{"quantity": quantity}
	return c.do(ctx, http.MethodPatch, c.endpoints.CartItem(userID, productID), nil, body, nil)
}

// RemoveFromCart deletes one product from the user's cart.
func (c *Client) RemoveFromCart(ctx context.Context, userID, productID string) error {
	body := map[string]string{
		"userId":    userID,
		"productId": productID,
	}
	return c.do(ctx, http.MethodDelete, c.endpoints.CartRemove(), nil, body, nil)
}

// ClearCart empties the user's cart.
func (c *Client) ClearCart(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoints.CartClear(userID), nil, nil, nil)
}
