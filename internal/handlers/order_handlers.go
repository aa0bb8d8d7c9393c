package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/srilaxmialankar/storefront-golang/internal/backend"
	"github.com/srilaxmialankar/storefront-golang/internal/models"
	"github.com/srilaxmialankar/storefront-golang/internal/pricing"
)

//
// --- Order handlers (login required) ---
//

// CreateOrderInput is the checkout payload. Amount is recomputed from live
// prices server-side; the client's items are what we forward.
type CreateOrderInput struct {
	Items   []models.OrderItem `json:"items" binding:"required,min=1,dive"`
	Address string             `json:"address"`
}

func (h *Handlers) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 1. --- Price the order server-side, never from the client ---
	// Live calculated price when one exists; otherwise the same flat or
	// discounted price the product card displays. Only a product with no
	// price of any kind blocks the order.
	calculated := h.Prices.Calculated()
	products, _ := h.Catalog.Products()
	byID := make(map[string]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	var amount float64
	for i, item := range input.Items {
		product, known := byID[item.ProductID]
		if !known {
			// Still priceable when a live calculation exists for the id.
			product = models.Product{ID: item.ProductID}
		}
		display, ok := pricing.DisplayFor(product, calculated)
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "A product in your order has no current price. Please refresh and try again."})
			return
		}
		unitPrice := display.Amount
		if display.DiscountedPrice != nil {
			unitPrice = *display.DiscountedPrice
		}
		input.Items[i].UnitPrice = unitPrice
		amount += unitPrice * float64(item.Quantity)
	}

	// 2. --- Create the order and hand back the payment session ---
	session, err := h.Backend.CreateOrder(c.Request.Context(), backend.CreateOrderInput{
		Items:           input.Items,
		Amount:          amount,
		Address:         input.Address,
		ClientReference: uuid.NewString(),
	})
	if err != nil {
		if backend.IsAuthFailure(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Your session has expired. Please log in again."})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":          session.OrderID,
		"paymentSessionId": session.PaymentSessionID,
		"amount":           amount,
	})
}

// VerifyPaymentInput confirms payment capture after the widget returns.
type VerifyPaymentInput struct {
	OrderID string `json:"orderId" binding:"required"`
}

func (h *Handlers) VerifyPayment(c *gin.Context) {
	var input VerifyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := h.Backend.VerifyPayment(c.Request.Context(), input.OrderID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment verified"})
}

func (h *Handlers) GetMyOrders(c *gin.Context) {
	orders, err := h.Backend.GetUserOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handlers) GetOrderDetails(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := h.Backend.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		if backend.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, order)
}
