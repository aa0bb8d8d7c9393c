package models

// Product is a catalog item as served by the backend's /gold routes.
// Products are immutable from our side; we only read them.
// Pointers are used for optional money fields so "absent" and "zero" stay
// distinguishable in JSON.
type Product struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// Category comes back in two flavours depending on backend version:
	// a populated name in 'category' and/or a raw identifier in 'categoryId'.
	// The catalog filter matches against both.
	Category   string `json:"category,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`

	// --- Gold attributes ---
	Carat        string  `json:"carat"`                  // purity code, e.g. "22K"
	NetWeight    float64 `json:"netWeight"`              // grams of gold content
	GrossWeight  float64 `json:"grossWeight,omitempty"`  // grams including stones
	MakingCharge float64 `json:"makingcharge,omitempty"` // percentage surcharge on gold value

	// --- Flat pricing (fallback when live calculation is impossible) ---
	Price           *float64 `json:"price,omitempty"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`

	// --- Media ---
	Images     []string `json:"images,omitempty"`
	CoverImage string   `json:"coverImage,omitempty"`

	// --- Merchandising flags ---
	Featured    bool `json:"featured,omitempty"`
	BestSelling bool `json:"bestSelling,omitempty"`
	Everyday    bool `json:"everyday,omitempty"`
}

// GalleryImages returns the cover image followed by the gallery, with empty
// entries dropped.
func (p Product) GalleryImages() []string {
	images := make([]string, 0, len(p.Images)+1)
	if p.CoverImage != "" {
		images = append(images, p.CoverImage)
	}
	for _, img := range p.Images {
		if img != "" {
			images = append(images, img)
		}
	}
	return images
}
