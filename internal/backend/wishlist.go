package backend

import (
	"context"
	"net/http"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
)

// GetWishlist fetches the remote wishlist for a user.
func (c *Client) GetWishlist(ctx context.Context, userID string) (models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := c.do(ctx, http.MethodGet, c.endpoints.WishlistUser(userID), nil, nil, &wishlist); err != nil {
		return models.Wishlist{}, err
	}
	return wishlist, nil
}

// AddToWishlist saves a product into the user's remote wishlist.
func (c *Client) AddToWishlist(ctx context.Context, userID, productID string) error {
	body := map[string]string{
		"userId":    userID,
		"productId": productID,
	}
	return c.do(ctx, http.MethodPost, c.endpoints.Wishlist(), nil, body, nil)
}

// RemoveFromWishlist deletes a product from the user's remote wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoints.WishlistItem(userID, productID), nil, nil, nil)
}
