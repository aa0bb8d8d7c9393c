package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetWishlist serves the current favorites set.
func (h *Handlers) GetWishlist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"productIds": h.Wishlist.All(),
		"count":      h.Wishlist.Count(),
	})
}

// ToggleFavoriteInput is the JSON for toggling a product's favorite status.
type ToggleFavoriteInput struct {
	ProductID string `json:"productId" binding:"required"`
}

// ToggleFavorite flips the favorite status of one product. The remote
// wishlist is updated first; if that fails nothing changes locally and the
// caller gets an error to surface to the user.
func (h *Handlers) ToggleFavorite(c *gin.Context) {
	var input ToggleFavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorited, err := h.Wishlist.Toggle(c.Request.Context(), input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update wishlist. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId": input.ProductID,
		"favorited": favorited,
		"count":     h.Wishlist.Count(),
	})
}
