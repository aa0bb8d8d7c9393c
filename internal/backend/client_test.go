package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/srilaxmialankar/storefront-golang/internal/config"
)

func testClient(srv *httptest.Server, token string) *Client {
	cfg := &config.Config{BackendURL: srv.URL}
	var source TokenSource
	if token != "" {
		source = func() string { return token }
	}
	return New(cfg, source)
}

func TestDecodeProductList(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"bare array", `[{"_id":"a"},{"_id":"b"}]`, 2, false},
		{"products envelope", `{"products":[{"_id":"a"}]}`, 1, false},
		{"data envelope", `{"data":[{"_id":"a"},{"_id":"b"},{"_id":"c"}]}`, 3, false},
		{"empty array", `[]`, 0, false},
		{"empty envelope", `{"products":[]}`, 0, false},
		{"unrecognized object", `{"items":[{"_id":"a"}]}`, 0, true},
		{"scalar", `42`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeProductList(json.RawMessage(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrUnexpectedShape) {
					t.Fatalf("err = %v, want ErrUnexpectedShape", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d products, want %d", len(got), tt.want)
			}
		})
	}
}

func TestGetProductsSendsQueryAndToken(t *testing.T) {
	var gotAuth, gotCategory, gotFeatured string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCategory = r.URL.Query().Get("category")
		gotFeatured = r.URL.Query().Get("featured")
		w.Write([]byte(`{"products":[{"_id":"a","name":"Ring"}]}`))
	}))
	defer srv.Close()

	client := testClient(srv, "tok-123")
	products, err := client.GetProducts(context.Background(), ProductQuery{Category: "rings", Featured: true})
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Ring" {
		t.Errorf("products = %+v", products)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotCategory != "rings" || gotFeatured != "true" {
		t.Errorf("query = category=%q featured=%q", gotCategory, gotFeatured)
	}
}

func TestAPIErrorCarriesBackendMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusBadRequest, `{"message":"bad input"}`, "bad input"},
		{"error field", http.StatusConflict, `{"error":"duplicate"}`, "duplicate"},
		{"unreadable body", http.StatusInternalServerError, `<html>`, "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := testClient(srv, "").GetProducts(context.Background(), ProductQuery{})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.Status != tt.status || apiErr.Message != tt.message {
				t.Errorf("APIError = %+v", apiErr)
			}
		})
	}
}

func TestIsAuthFailureAndIsNotFound(t *testing.T) {
	if !IsAuthFailure(&APIError{Status: http.StatusUnauthorized}) {
		t.Error("401 should be an auth failure")
	}
	if !IsAuthFailure(&APIError{Status: http.StatusForbidden}) {
		t.Error("403 should be an auth failure")
	}
	if IsAuthFailure(&APIError{Status: http.StatusNotFound}) {
		t.Error("404 is not an auth failure")
	}
	if !IsNotFound(&APIError{Status: http.StatusNotFound}) {
		t.Error("404 should be not-found")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("plain errors are not not-found")
	}
}

func TestGetTodayPricesBuildsTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"Carat":"22k","TodayPricePerGram":6000},
			{"Carat":"18K","TodayPricePerGram":5000},
			{"Carat":"14K","TodayPricePerGram":0}
		]`))
	}))
	defer srv.Close()

	table, err := testClient(srv, "").GetTodayPrices(context.Background())
	if err != nil {
		t.Fatalf("GetTodayPrices: %v", err)
	}

	// Carat codes are normalized to uppercase; zero-priced rows are dropped.
	if price, ok := table.PricePerGram("22K"); !ok || price != 6000 {
		t.Errorf("22K price = %v, ok=%v", price, ok)
	}
	if _, ok := table.PricePerGram("14K"); ok {
		t.Error("zero-priced carat should have been dropped")
	}
	if len(table) != 2 {
		t.Errorf("table = %v, want 2 rows", table)
	}
}

func TestAnonymousClientSendsNoAuthHeader(t *testing.T) {
	var gotAuth string
	sawHeader := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		sawHeader = true
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := testClient(srv, "").GetProducts(context.Background(), ProductQuery{}); err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if !sawHeader || gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}
