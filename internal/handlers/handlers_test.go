package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

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

// newTestHandlers wires a full handler set against a scripted backend
// server. The price feed is constructed but never started, so its status
// stays "initializing" throughout.
func newTestHandlers(t *testing.T, backendSrv *httptest.Server) *Handlers {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		BackendURL: backendSrv.URL,
		PageSize:   2,
	}

	store, err := localstore.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	session := auth.NewSession(store)
	client := backend.New(cfg, session.Token)
	session.AttachAPI(client)

	view := catalog.NewView(cfg.PageSize)
	prices := pricing.NewStore(view)
	feed := pricefeed.New("ws://127.0.0.1:1", client.GetTodayPrices, prices.SetTable, pricefeed.Options{})

	return &Handlers{
		Cfg:      cfg,
		Backend:  client,
		Session:  session,
		Store:    store,
		Feed:     feed,
		Catalog:  view,
		Prices:   prices,
		Wishlist: wishlist.New(client, store),
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, target string) (int, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))

	body := map[string]json.RawMessage{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w.Code, body
}

func TestGetProductsFiltersAndPaginates(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	h := newTestHandlers(t, srv)
	h.Catalog.SetProducts([]models.Product{
		{ID: "r1", CategoryID: "rings", Carat: "22K", NetWeight: 1},
		{ID: "r2", CategoryID: "rings", Carat: "18K", NetWeight: 2},
		{ID: "r3", CategoryID: "rings", Carat: "22K", NetWeight: 3},
		{ID: "c1", CategoryID: "chains", Carat: "22K", NetWeight: 4},
	})
	h.Prices.SetTable(models.CaratPriceTable{"22K": 6000, "18K": 5000})

	router := gin.New()
	router.GET("/products", h.GetProducts)

	code, body := doJSON(t, router, http.MethodGet, "/products?category=rings&page=2")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}

	var page []ProductView
	if err := json.Unmarshal(body["products"], &page); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	// 3 rings at page size 2: page 2 holds the last one, with a live price.
	if len(page) != 1 || page[0].ID != "r3" {
		t.Fatalf("page = %+v", page)
	}
	if page[0].CalculatedPrice == nil || page[0].CalculatedPrice.Total != 18000.00 {
		t.Errorf("r3 calculated price = %+v", page[0].CalculatedPrice)
	}

	var info catalog.PageInfo
	if err := json.Unmarshal(body["pagination"], &info); err != nil {
		t.Fatalf("decode pagination: %v", err)
	}
	if info.Page != 2 || info.TotalItems != 3 || info.TotalPages != 2 {
		t.Errorf("pagination = %+v", info)
	}

	var status string
	if err := json.Unmarshal(body["feedStatus"], &status); err != nil {
		t.Fatalf("decode feedStatus: %v", err)
	}
	if status != string(pricefeed.StatusInitializing) {
		t.Errorf("feedStatus = %q", status)
	}
}

func TestRefreshProductsKeepsCacheOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	h := newTestHandlers(t, srv)
	router := gin.New()
	router.POST("/products/refresh", h.RefreshProducts)

	// No previous fetch: the failure surfaces.
	code, _ := doJSON(t, router, http.MethodPost, "/products/refresh")
	if code != http.StatusBadGateway {
		t.Fatalf("status with empty catalog = %d, want 502", code)
	}

	// With a previous list the handler degrades instead of failing.
	h.Catalog.SetProducts([]models.Product{{ID: "r1"}})
	code, body := doJSON(t, router, http.MethodPost, "/products/refresh")
	if code != http.StatusOK {
		t.Fatalf("status with cached catalog = %d, want 200", code)
	}
	var message string
	if err := json.Unmarshal(body["message"], &message); err != nil || message == "" {
		t.Errorf("expected a cached-data message, got %q (%v)", message, err)
	}
}

func TestGetTodayPricesSortsHighestCaratFirst(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	h := newTestHandlers(t, srv)
	h.Catalog.SetProducts([]models.Product{{ID: "p", Carat: "22K", NetWeight: 1}})
	h.Prices.SetTable(models.CaratPriceTable{"18K": 5000, "24K": 7000, "22K": 6000})

	router := gin.New()
	router.GET("/goldprice/today", h.GetTodayPrices)

	code, body := doJSON(t, router, http.MethodGet, "/goldprice/today")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}

	var carats []string
	if err := json.Unmarshal(body["carats"], &carats); err != nil {
		t.Fatalf("decode carats: %v", err)
	}
	want := []string{"24K", "22K", "18K"}
	for i := range want {
		if carats[i] != want[i] {
			t.Fatalf("carats = %v, want %v", carats, want)
		}
	}
}

func TestSectionsDegradeToEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	h := newTestHandlers(t, srv)
	router := gin.New()
	router.GET("/products/featured", h.GetFeaturedProducts)

	code, body := doJSON(t, router, http.MethodGet, "/products/featured")
	if code != http.StatusOK {
		t.Fatalf("status = %d, sections must always render", code)
	}

	var products []models.Product
	if err := json.Unmarshal(body["products"], &products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("products = %+v, want empty", products)
	}
	if _, ok := body["message"]; !ok {
		t.Error("degraded section response carries no message")
	}
}

func TestSectionsServeCachedResultAfterFailure(t *testing.T) {
	failing := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"_id":"f1","featured":true}]`))
	}))
	defer srv.Close()

	h := newTestHandlers(t, srv)
	router := gin.New()
	router.GET("/products/featured", h.GetFeaturedProducts)

	// First call populates the section cache.
	if code, _ := doJSON(t, router, http.MethodGet, "/products/featured"); code != http.StatusOK {
		t.Fatalf("initial fetch status = %d", code)
	}

	failing = true
	code, body := doJSON(t, router, http.MethodGet, "/products/featured")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var products []models.Product
	if err := json.Unmarshal(body["products"], &products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(products) != 1 || products[0].ID != "f1" {
		t.Errorf("cached section = %+v", products)
	}
}

func TestCreateOrderPricesFromLiveTable(t *testing.T) {
	var received backend.CreateOrderInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/order/create" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"paymentSessionId":"ps-1","order":{"cashfree":{"orderId":"cf-1"}}}`))
	}))
	defer srv.Close()

	h := newTestHandlers(t, srv)
	h.Catalog.SetProducts([]models.Product{{ID: "r1", Carat: "22K", NetWeight: 10, MakingCharge: 10}})
	h.Prices.SetTable(models.CaratPriceTable{"22K": 6000})

	router := gin.New()
	router.POST("/checkout", h.CreateOrder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout",
		strings.NewReader(`{"items":[{"productId":"r1","quantity":2,"unitPrice":1}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	// The client-sent unit price is overwritten with today's calculation.
	if len(received.Items) != 1 || received.Items[0].UnitPrice != 66000.00 {
		t.Errorf("forwarded items = %+v", received.Items)
	}
	if received.Amount != 132000.00 {
		t.Errorf("forwarded amount = %v, want 132000.00", received.Amount)
	}
	if received.ClientReference == "" {
		t.Error("no client reference minted for the order")
	}

	var resp struct {
		OrderID          string  `json:"orderId"`
		PaymentSessionID string  `json:"paymentSessionId"`
		Amount           float64 `json:"amount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OrderID != "cf-1" || resp.PaymentSessionID != "ps-1" {
		t.Errorf("response = %+v", resp)
	}
}

func TestCreateOrderFallsBackToFlatPrice(t *testing.T) {
	var received backend.CreateOrderInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"paymentSessionId":"ps-2","order":{"cashfree":{"orderId":"cf-2"}}}`))
	}))
	defer srv.Close()

	flat := 1500.0
	discountedFlat := 2000.0
	discount := 1800.0

	h := newTestHandlers(t, srv)
	// Neither product can be priced from the carat table; both display (and
	// must sell) at their flat price, the discounted one at the discount.
	h.Catalog.SetProducts([]models.Product{
		{ID: "flat-only", Price: &flat},
		{ID: "discounted", Price: &discountedFlat, DiscountedPrice: &discount},
	})

	router := gin.New()
	router.POST("/checkout", h.CreateOrder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout",
		strings.NewReader(`{"items":[
			{"productId":"flat-only","quantity":2},
			{"productId":"discounted","quantity":1}
		]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, flat-priced products must be orderable: %s", w.Code, w.Body.String())
	}
	if len(received.Items) != 2 {
		t.Fatalf("forwarded items = %+v", received.Items)
	}
	if received.Items[0].UnitPrice != 1500.00 {
		t.Errorf("flat-only unit price = %v, want 1500.00", received.Items[0].UnitPrice)
	}
	if received.Items[1].UnitPrice != 1800.00 {
		t.Errorf("discounted unit price = %v, want 1800.00", received.Items[1].UnitPrice)
	}
	if received.Amount != 4800.00 {
		t.Errorf("amount = %v, want 4800.00", received.Amount)
	}
}

func TestCreateOrderRejectsUnpricedProduct(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	h := newTestHandlers(t, srv)
	router := gin.New()
	router.POST("/checkout", h.CreateOrder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout",
		strings.NewReader(`{"items":[{"productId":"ghost","quantity":1}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestAnonymousCartReusesMintedGuestID(t *testing.T) {
	var userIDs []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID string `json:"userId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			userIDs = append(userIDs, body.UserID)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	h := newTestHandlers(t, srv)
	router := gin.New()
	router.POST("/cart/items", h.AddToCart)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cart/items",
			strings.NewReader(`{"productId":"r1","quantity":1}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
	}

	if len(userIDs) != 2 {
		t.Fatalf("backend saw %d cart calls, want 2", len(userIDs))
	}
	if !strings.HasPrefix(userIDs[0], "guest-") {
		t.Errorf("guest id = %q, want guest- prefix", userIDs[0])
	}
	if userIDs[0] != userIDs[1] {
		t.Errorf("guest id changed between calls: %q then %q", userIDs[0], userIDs[1])
	}
}

