package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Cart handlers (login required) ---
// The cart lives in the remote backend; these handlers proxy it for the
// signed-in user.
//

// AddToCartInput is the JSON for adding an item to the cart.
type AddToCartInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

func (h *Handlers) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	userID := h.cartUserID(c.Request.Context())
	if err := h.Backend.AddToCart(c.Request.Context(), userID, input.ProductID, input.Quantity); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to add item to cart"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart"})
}

func (h *Handlers) GetCart(c *gin.Context) {
	cart, err := h.Backend.GetCart(c.Request.Context(), h.cartUserID(c.Request.Context()))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateCartItemInput sets the quantity of one cart line.
type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

func (h *Handlers) UpdateCartItem(c *gin.Context) {
	productID := c.Param("product_id")

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := h.Backend.UpdateCartItem(c.Request.Context(), h.cartUserID(c.Request.Context()), productID, input.Quantity); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update cart item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

func (h *Handlers) DeleteCartItem(c *gin.Context) {
	productID := c.Param("product_id")

	if err := h.Backend.RemoveFromCart(c.Request.Context(), h.cartUserID(c.Request.Context()), productID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to remove cart item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (h *Handlers) ClearCart(c *gin.Context) {
	if err := h.Backend.ClearCart(c.Request.Context(), h.cartUserID(c.Request.Context())); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
