package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/srilaxmialankar/storefront-golang/internal/backend"
	"github.com/srilaxmialankar/storefront-golang/internal/catalog"
	"github.com/srilaxmialankar/storefront-golang/internal/models"
	"github.com/srilaxmialankar/storefront-golang/internal/pricing"
)

// ProductView is one product as the listing page renders it: the raw
// product plus its price resolution and favorite status.
type ProductView struct {
	models.Product
	CalculatedPrice *models.CalculatedPrice `json:"calculatedPrice,omitempty"`
	Display         *pricing.Display        `json:"display,omitempty"`
	Favorited       bool                    `json:"favorited"`
}

// GetProducts serves the current catalog page. Query parameters drive the
// view state machine:
//
//	?category=<id|all>  select category filter (resets to page 1 on change)
//	?carat=<code|all>   select carat filter (resets to page 1 on change)
//	?page=<n>           navigate; out-of-range values are ignored
func (h *Handlers) GetProducts(c *gin.Context) {
	// 1. --- Apply filter selections ---
	if category, ok := c.GetQuery("category"); ok {
		h.Catalog.SetCategory(category)
	}
	if carat, ok := c.GetQuery("carat"); ok {
		h.Catalog.SetCarat(carat)
	}

	// 2. --- Page navigation (after filters, which reset to page 1) ---
	if pageRaw, ok := c.GetQuery("page"); ok {
		if page, err := strconv.Atoi(pageRaw); err == nil {
			h.Catalog.SetPage(page)
		}
	}

	// 3. --- Assemble the page with prices and favorite flags ---
	page, info := h.Catalog.Page()
	calculated := h.Prices.Calculated()

	items := make([]ProductView, 0, len(page))
	for _, product := range page {
		view := ProductView{
			Product:   product,
			Favorited: h.Wishlist.Contains(product.ID),
		}
		if calc, ok := calculated[product.ID]; ok {
			view.CalculatedPrice = &calc
		}
		if display, ok := pricing.DisplayFor(product, calculated); ok {
			view.Display = &display
		}
		items = append(items, view)
	}

	products, _ := h.Catalog.Products()

	c.JSON(http.StatusOK, gin.H{
		"products":   items,
		"pagination": info,
		"carats":     catalog.Carats(products),
		"feedStatus": h.Feed.Status(),
	})
}

// RefreshProducts refetches the product list from the backend and replaces
// the catalog's raw list. On failure the previously fetched list keeps
// serving (degraded, with a message).
func (h *Handlers) RefreshProducts(c *gin.Context) {
	query := backend.ProductQuery{Category: c.Query("category")}

	products, err := h.Backend.GetProducts(c.Request.Context(), query)
	if err != nil {
		_, version := h.Catalog.Products()
		if version > 0 {
			c.JSON(http.StatusOK, gin.H{
				"message": "Showing cached data. Unable to fetch latest products.",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load products."})
		return
	}

	h.Catalog.SetProducts(products)
	h.Prices.Recompute()

	message := ""
	if len(products) == 0 {
		message = "No products available in this category. Please check back later."
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(products),
		"message": message,
	})
}

// GetProduct serves a single product by id, with its live price when one
// can be computed from today's table.
func (h *Handlers) GetProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.Backend.GetProduct(c.Request.Context(), id)
	if err != nil {
		if backend.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch product details."})
		return
	}

	calculated := pricing.Calculate([]models.Product{product}, h.Prices.Table())

	view := ProductView{
		Product:   product,
		Favorited: h.Wishlist.Contains(product.ID),
	}
	if calc, ok := calculated[product.ID]; ok {
		view.CalculatedPrice = &calc
	}
	if display, ok := pricing.DisplayFor(product, calculated); ok {
		view.Display = &display
	}

	c.JSON(http.StatusOK, view)
}

// Promotional sections. Each proxies a flagged /gold query and keeps the
// last good result as a fallback so the homepage always renders.

func (h *Handlers) GetFeaturedProducts(c *gin.Context) {
	h.serveSection(c, "featured", backend.ProductQuery{Featured: true})
}

func (h *Handlers) GetBestSellingProducts(c *gin.Context) {
	h.serveSection(c, "bestSelling", backend.ProductQuery{BestSelling: true})
}

func (h *Handlers) GetEverydayProducts(c *gin.Context) {
	h.serveSection(c, "everyday", backend.ProductQuery{Everyday: true})
}

func (h *Handlers) serveSection(c *gin.Context, name string, query backend.ProductQuery) {
	products, err := h.Backend.GetProducts(c.Request.Context(), query)
	if err != nil {
		// Degrade: cached data if we have it, otherwise an empty list. Either
		// way the section renders and the message is dismissible.
		if cached, ok := h.cachedSection(name); ok {
			c.JSON(http.StatusOK, gin.H{
				"products": cached,
				"message":  "Showing cached data.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products": []models.Product{},
			"message":  "This section is temporarily unavailable.",
		})
		return
	}

	h.storeSection(name, products)
	c.JSON(http.StatusOK, gin.H{"products": products})
}
