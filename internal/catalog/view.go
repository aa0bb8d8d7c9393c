// Package catalog maintains the storefront's filtered, paginated view over
// the fetched product list.
package catalog

import (
	"strings"
	"sync"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
)

// All is the sentinel filter value meaning "no filtering on this axis".
const All = "all"

// View is the product-listing state machine: the raw product list (server
// truth), the filter selections, the derived filtered list and the current
// page. Any change to the filters or the raw list recomputes the filtered
// list synchronously and resets the page to 1.
//
// A monotonic version counter tracks the raw list so price computations made
// against a superseded list can be discarded (see handlers).
//
// The browser app mutated this state on a single event loop; here the feed
// goroutine and HTTP handlers share it, so a mutex serializes access.
type View struct {
	mu sync.Mutex

	products []models.Product
	version  uint64

	category string
	carat    string

	filtered []models.Product
	page     int
	pageSize int
}

// NewView creates a view with no products, both filters set to All, and the
// given page size (12 in production).
func NewView(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &View{
		category: All,
		carat:    All,
		page:     1,
		pageSize: pageSize,
	}
}

// SetProducts replaces the raw product list, bumps the list version,
// recomputes the filtered list and resets pagination.
func (v *View) SetProducts(products []models.Product) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.products = products
	v.version++
	v.refilterLocked()
	return v.version
}

// Products returns a snapshot of the raw list together with its version.
func (v *View) Products() ([]models.Product, uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	snapshot := make([]models.Product, len(v.products))
	copy(snapshot, v.products)
	return snapshot, v.version
}

// Version returns the current raw-list version.
func (v *View) Version() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.version
}

// SetCategory selects a category filter ("all" clears it). Selecting the
// value already in effect is a no-op; an actual change refilters and resets
// to page 1.
func (v *View) SetCategory(category string) {
	if category == "" {
		category = All
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.category == category {
		return
	}
	v.category = category
	v.refilterLocked()
}

// SetCarat selects a carat filter ("all" clears it); matching is
// case-insensitive.
func (v *View) SetCarat(carat string) {
	if carat == "" {
		carat = All
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	if strings.EqualFold(v.carat, carat) {
		return
	}
	v.carat = carat
	v.refilterLocked()
}

// ClearFilters resets both filters to All.
func (v *View) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.category == All && v.carat == All {
		return
	}
	v.category = All
	v.carat = All
	v.refilterLocked()
}

// SetPage navigates to page p. Pages outside [1, totalPages] leave the
// current page unchanged.
func (v *View) SetPage(p int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if p < 1 || p > v.totalPagesLocked() {
		return
	}
	v.page = p
}

// NextPage advances one page if there is one.
func (v *View) NextPage() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.page < v.totalPagesLocked() {
		v.page++
	}
}

// PrevPage goes back one page if there is one.
func (v *View) PrevPage() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.page > 1 {
		v.page--
	}
}

// PageInfo describes the slice of the filtered list currently showing.
type PageInfo struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
	TotalItems int    `json:"totalItems"`
	Category   string `json:"category"`
	Carat      string `json:"carat"`
}

// Page returns the products on the current page plus pagination metadata.
func (v *View) Page() ([]models.Product, PageInfo) {
	v.mu.Lock()
	defer v.mu.Unlock()

	info := PageInfo{
		Page:       v.page,
		PageSize:   v.pageSize,
		TotalPages: v.totalPagesLocked(),
		TotalItems: len(v.filtered),
		Category:   v.category,
		Carat:      v.carat,
	}

	start := (v.page - 1) * v.pageSize
	if start >= len(v.filtered) {
		return []models.Product{}, info
	}
	end := start + v.pageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}

	page := make([]models.Product, end-start)
	copy(page, v.filtered[start:end])
	return page, info
}

func (v *View) refilterLocked() {
	v.filtered = Filter(v.products, v.category, v.carat)
	v.page = 1
}

func (v *View) totalPagesLocked() int {
	return (len(v.filtered) + v.pageSize - 1) / v.pageSize
}

// Filter is the pure filtering function: category then carat. The category
// filter matches on exact identifier equality against both the categoryId
// and category fields (older backend payloads only populate the latter); the
// carat filter matches case-insensitively.
func Filter(products []models.Product, category, carat string) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != All && p.CategoryID != category && p.Category != category {
			continue
		}
		if carat != All && !strings.EqualFold(p.Carat, carat) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// Carats returns the distinct uppercased carat codes present in the product
// list, for populating the carat filter dropdown.
func Carats(products []models.Product) []string {
	seen := make(map[string]struct{})
	carats := make([]string, 0, 4)
	for _, p := range products {
		carat := strings.ToUpper(strings.TrimSpace(p.Carat))
		if carat == "" {
			continue
		}
		if _, ok := seen[carat]; ok {
			continue
		}
		seen[carat] = struct{}{}
		carats = append(carats, carat)
	}
	return carats
}
