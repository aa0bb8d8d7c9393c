package pricing

import (
	"sync"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
)

// ProductSource exposes a snapshot of the raw product list plus a monotonic
// version that changes whenever the list is replaced. catalog.View satisfies
// it.
type ProductSource interface {
	Products() ([]models.Product, uint64)
}

// Store holds the current carat price table and the calculated-price map
// derived from it. The map is rebuilt, never patched, whenever either the
// table or the product list changes, and only committed if the product
// list version it was computed against is still current, so a late
// computation against a stale list is discarded instead of clobbering
// fresher state.
type Store struct {
	source ProductSource

	mu         sync.Mutex
	table      models.CaratPriceTable
	calculated map[string]models.CalculatedPrice
	version    uint64
}

// NewStore creates an empty price store over the given product source.
func NewStore(source ProductSource) *Store {
	return &Store{
		source:     source,
		table:      models.CaratPriceTable{},
		calculated: map[string]models.CalculatedPrice{},
	}
}

// SetTable replaces the carat price table wholesale and recomputes.
func (s *Store) SetTable(table models.CaratPriceTable) {
	s.mu.Lock()
	s.table = table
	s.mu.Unlock()
	s.Recompute()
}

// Table returns the current carat price table.
func (s *Store) Table() models.CaratPriceTable {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := make(models.CaratPriceTable, len(s.table))
	for carat, price := range s.table {
		table[carat] = price
	}
	return table
}

// Recompute rebuilds the calculated-price map against the current product
// snapshot. Calculation is deferred until both the product list and the
// price table are non-empty. Call it after every product-list replacement.
func (s *Store) Recompute() {
	products, version := s.source.Products()

	s.mu.Lock()
	table := s.table
	s.mu.Unlock()

	if len(products) == 0 || len(table) == 0 {
		return
	}

	calculated := Calculate(products, table)

	// Commit only if no newer product list arrived while we were computing.
	if _, current := s.source.Products(); current != version {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if version < s.version {
		return
	}
	s.calculated = calculated
	s.version = version
}

// Calculated returns the current calculated-price map.
func (s *Store) Calculated() map[string]models.CalculatedPrice {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]models.CalculatedPrice, len(s.calculated))
	for id, price := range s.calculated {
		out[id] = price
	}
	return out
}
