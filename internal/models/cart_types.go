package models

// CartItem is one line of a user's cart.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart is the backend's cart document for one user (or guest id).
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}
