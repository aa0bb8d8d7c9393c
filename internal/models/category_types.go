package models

// Category is a product category as served by /category/getAllCategory.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`

	// Slug is not part of the backend payload; we derive it locally so the
	// frontend can build stable filter URLs.
	Slug string `json:"slug,omitempty"`
}
