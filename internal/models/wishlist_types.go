package models

// WishlistItem is one saved product in a user's remote wishlist.
type WishlistItem struct {
	ProductID string `json:"productId"`
}

// Wishlist is the backend's wishlist document shape: the product ids live
// under an "items" array.
type Wishlist struct {
	UserID string         `json:"userId,omitempty"`
	Items  []WishlistItem `json:"items"`
}
