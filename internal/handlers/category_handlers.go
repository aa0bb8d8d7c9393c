package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
)

// GetAllCategories serves the category list for the filter sidebar. On
// backend failure the last good list keeps serving; with no cache the
// frontend falls back to its built-in "All Categories" entry.
func (h *Handlers) GetAllCategories(c *gin.Context) {
	categories, err := h.Backend.GetCategories(c.Request.Context())
	if err != nil {
		if cached, ok := h.cachedCategories(); ok {
			c.JSON(http.StatusOK, gin.H{
				"categories": cached,
				"message":    "Showing cached categories.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"categories": []models.Category{},
			"message":    "Failed to load categories. Using default categories.",
		})
		return
	}

	h.storeCategories(categories)
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
