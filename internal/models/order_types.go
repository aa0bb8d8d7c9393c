package models

import "time"

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"` // price at the time of purchase
}

// Order is an order record as returned by the backend's /order routes.
type Order struct {
	ID        string      `json:"_id"`
	UserID    string      `json:"userId"`
	Status    string      `json:"status"` // e.g. created, paid, shipped
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CheckoutSession is what the storefront needs from /order/create to hand
// the hosted payment widget its session: the widget itself is outside our
// scope, we stop at the session id.
type CheckoutSession struct {
	OrderID          string `json:"orderId"`
	PaymentSessionID string `json:"paymentSessionId"`
}
