package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable for the storefront service. It is built once in
// main and passed by reference to every collaborator; there are no ambient
// package-level endpoint globals.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	Port        int    `envconfig:"PORT" default:"8080"`

	// Remote backend that owns catalog, wishlist, auth and order data.
	BackendURL string `envconfig:"BACKEND_URL" default:"https://backend.srilaxmialankar.com"`

	// Live gold-price channel. Empty means "derive from BackendURL".
	GoldPriceWSURL string `envconfig:"GOLD_PRICE_WS_URL"`

	// Price feed behaviour.
	ConnectTimeout time.Duration `envconfig:"FEED_CONNECT_TIMEOUT" default:"5s"`
	ReconnectDelay time.Duration `envconfig:"FEED_RECONNECT_DELAY" default:"5s"`
	PollInterval   time.Duration `envconfig:"FEED_POLL_INTERVAL" default:"30s"`

	// Local persistence for token / user / favorites. If RedisURL is set the
	// Redis store is used, otherwise a JSON file under StorePath.
	StorePath string `envconfig:"STORE_PATH" default:"storefront-state.json"`
	RedisURL  string `envconfig:"REDIS_URL"`

	// Frontend origin allowed by CORS.
	AllowedOrigin string `envconfig:"ALLOWED_ORIGIN" default:"http://localhost:5173"`

	// Catalog page size.
	PageSize int `envconfig:"CATALOG_PAGE_SIZE" default:"12"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	if cfg.GoldPriceWSURL == "" {
		cfg.GoldPriceWSURL = deriveWSURL(cfg.BackendURL) + "/ws/goldprice"
	}
	return &cfg, nil
}

// Endpoints returns the backend endpoint set for this configuration. The
// paths mirror the backend's public API surface.
func (c *Config) Endpoints() Endpoints {
	return Endpoints{base: strings.TrimRight(c.BackendURL, "/")}
}

// Endpoints builds full URLs for the remote backend routes.
type Endpoints struct {
	base string
}

func (e Endpoints) Products() string               { return e.base + "/gold" }
func (e Endpoints) ProductDetail(id string) string { return e.base + "/gold/" + id }
func (e Endpoints) Categories() string             { return e.base + "/category/getAllCategory" }
func (e Endpoints) GoldPrice() string              { return e.base + "/today-price/PriceRouting" }

func (e Endpoints) Wishlist() string { return e.base + "/wishlist/wishlist" }
func (e Endpoints) WishlistUser(userID string) string {
	return e.base + "/wishlist/wishlist/" + userID
}
func (e Endpoints) WishlistItem(userID, productID string) string {
	return e.base + "/wishlist/wishlist/" + userID + "/" + productID
}

func (e Endpoints) AuthLogin() string        { return e.base + "/auth/login" }
func (e Endpoints) AuthSignup() string       { return e.base + "/auth/signup" }
func (e Endpoints) AuthGoogleSignin() string { return e.base + "/auth/google-signin" }
func (e Endpoints) AuthProfile() string      { return e.base + "/auth/profile" }

func (e Endpoints) OrderCreate() string { return e.base + "/order/create" }
func (e Endpoints) OrderVerify() string { return e.base + "/order/verify" }
func (e Endpoints) OrdersUser() string  { return e.base + "/order/user" }
func (e Endpoints) OrderDetail(orderID string) string {
	return e.base + "/order/user/" + orderID
}

func (e Endpoints) CartAdd() string { return e.base + "/cart/add-to-cart" }
func (e Endpoints) Cart(userID string) string {
	return e.base + "/cart/" + userID
}
func (e Endpoints) CartItem(userID, productID string) string {
	return e.base + "/cart/" + userID + "/items/" + productID
}
func (e Endpoints) CartRemove() string { return e.base + "/cart/remove-from-cart" }
func (e Endpoints) CartClear(userID string) string {
	return e.base + "/cart/clear/" + userID
}

// deriveWSURL rewrites an http(s) base URL into its ws(s) counterpart.
func deriveWSURL(base string) string {
	base = strings.TrimRight(base, "/")
	switch {
	case strings.HasPrefix(base, "https"):
		return "wss" + base[len("https"):]
	case strings.HasPrefix(base, "http"):
		return "ws" + base[len("http"):]
	}
	return base
}
