package pricing

import (
	"sync"
	"testing"

	"github.com/srilaxmialankar/storefront-golang/internal/models"
)

// fakeSource is a hand-rolled ProductSource whose snapshot and version the
// test controls directly.
type fakeSource struct {
	mu       sync.Mutex
	products []models.Product
	version  uint64
}

func (f *fakeSource) Products() ([]models.Product, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products, f.version
}

func (f *fakeSource) set(products []models.Product) {
	f.mu.Lock()
	f.products = products
	f.version++
	f.mu.Unlock()
}

func TestStoreDefersUntilBothInputsPresent(t *testing.T) {
	source := &fakeSource{}
	store := NewStore(source)

	// Table before products: nothing to calculate yet.
	store.SetTable(models.CaratPriceTable{"22K": 6000})
	if got := store.Calculated(); len(got) != 0 {
		t.Fatalf("calculated before products arrived: %v", got)
	}

	source.set([]models.Product{{ID: "ring", Carat: "22K", NetWeight: 1}})
	store.Recompute()

	got := store.Calculated()
	if len(got) != 1 || got["ring"].Total != 6000.00 {
		t.Fatalf("calculated = %v, want ring at 6000.00", got)
	}
}

func TestStoreTableReplacedWholesale(t *testing.T) {
	source := &fakeSource{}
	source.set([]models.Product{{ID: "ring", Carat: "18K", NetWeight: 2}})
	store := NewStore(source)

	store.SetTable(models.CaratPriceTable{"18K": 5000, "22K": 6000})
	if got := store.Calculated()["ring"].Total; got != 10000.00 {
		t.Fatalf("ring total = %v, want 10000.00", got)
	}

	// The new table has no 18K row; the old row must not linger.
	store.SetTable(models.CaratPriceTable{"22K": 6100})
	if table := store.Table(); len(table) != 1 {
		t.Errorf("table = %v, want only 22K", table)
	}
	if _, ok := store.Calculated()["ring"]; ok {
		t.Error("ring kept a price from the replaced table")
	}
}

func TestStoreDiscardsStaleComputation(t *testing.T) {
	source := &fakeSource{}
	source.set([]models.Product{{ID: "old", Carat: "22K", NetWeight: 1}})
	store := NewStore(source)
	store.SetTable(models.CaratPriceTable{"22K": 6000})

	// A newer product list lands and is recomputed.
	source.set([]models.Product{{ID: "new", Carat: "22K", NetWeight: 2}})
	store.Recompute()

	// A straggler recompute against the same (current) snapshot is fine, but
	// the committed state must reflect the newest list, never the old one.
	store.Recompute()

	got := store.Calculated()
	if _, ok := got["old"]; ok {
		t.Error("price map still carries the superseded product")
	}
	if got["new"].Total != 12000.00 {
		t.Errorf("new total = %v, want 12000.00", got["new"].Total)
	}
}

func TestStoreCalculatedReturnsCopy(t *testing.T) {
	source := &fakeSource{}
	source.set([]models.Product{{ID: "ring", Carat: "22K", NetWeight: 1}})
	store := NewStore(source)
	store.SetTable(models.CaratPriceTable{"22K": 6000})

	snapshot := store.Calculated()
	delete(snapshot, "ring")

	if _, ok := store.Calculated()["ring"]; !ok {
		t.Error("mutating the returned map leaked into the store")
	}
}
