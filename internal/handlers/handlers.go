package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/srilaxmialankar/storefront-golang/internal/auth"
	"github.com/srilaxmialankar/storefront-golang/internal/backend"
	"github.com/srilaxmialankar/storefront-golang/internal/catalog"
	"github.com/srilaxmialankar/storefront-golang/internal/config"
	"github.com/srilaxmialankar/storefront-golang/internal/localstore"
	"github.com/srilaxmialankar/storefront-golang/internal/models"
	"github.com/srilaxmialankar/storefront-golang/internal/pricefeed"
	"github.com/srilaxmialankar/storefront-golang/internal/pricing"
	"github.com/srilaxmialankar/storefront-golang/internal/wishlist"
)

// Handlers holds all dependencies for the HTTP layer. Everything is injected
// from main; handlers never reach for globals.
type Handlers struct {
	Cfg      *config.Config
	Backend  *backend.Client
	Session  *auth.Session
	Store    localstore.Store
	Feed     *pricefeed.Client
	Catalog  *catalog.View
	Prices   *pricing.Store
	Wishlist *wishlist.Synchronizer

	// Last-good results for the promotional sections and categories, served
	// when a refresh against the backend fails (degraded-but-functional per
	// the error policy).
	cacheMu       sync.Mutex
	sectionCache  map[string][]models.Product
	categoryCache []models.Category
}

// cachedSection returns the last successful fetch for a promotional section.
func (h *Handlers) cachedSection(name string) ([]models.Product, bool) {
	h.cacheMu.Lock()
	defer h.cacheMu.Unlock()
	products, ok := h.sectionCache[name]
	return products, ok
}

func (h *Handlers) storeSection(name string, products []models.Product) {
	h.cacheMu.Lock()
	defer h.cacheMu.Unlock()
	if h.sectionCache == nil {
		h.sectionCache = make(map[string][]models.Product)
	}
	h.sectionCache[name] = products
}

func (h *Handlers) cachedCategories() ([]models.Category, bool) {
	h.cacheMu.Lock()
	defer h.cacheMu.Unlock()
	return h.categoryCache, h.categoryCache != nil
}

func (h *Handlers) storeCategories(categories []models.Category) {
	h.cacheMu.Lock()
	defer h.cacheMu.Unlock()
	h.categoryCache = categories
}

// cartUserID resolves the id the backend files the cart under: the signed-in
// user's id when there is one, otherwise a guest id minted once and persisted
// so the anonymous cart survives restarts.
func (h *Handlers) cartUserID(ctx context.Context) string {
	if userID := h.Session.UserID(); userID != "" {
		return userID
	}

	h.cacheMu.Lock()
	defer h.cacheMu.Unlock()

	var guestID string
	if data, err := h.Store.Get(ctx, localstore.KeyGuestCart); err == nil {
		_ = json.Unmarshal(data, &guestID)
	}
	if guestID != "" {
		return guestID
	}

	guestID = "guest-" + uuid.NewString()
	if data, err := json.Marshal(guestID); err == nil {
		_ = h.Store.Set(ctx, localstore.KeyGuestCart, data)
	}
	return guestID
}
