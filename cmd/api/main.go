package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/srilaxmialankar/storefront-golang/internal/auth"
	"github.com/srilaxmialankar/storefront-golang/internal/backend"
	"github.com/srilaxmialankar/storefront-golang/internal/catalog"
	"github.com/srilaxmialankar/storefront-golang/internal/config"
	"github.com/srilaxmialankar/storefront-golang/internal/handlers"
	"github.com/srilaxmialankar/storefront-golang/internal/localstore"
	"github.com/srilaxmialankar/storefront-golang/internal/pricefeed"
	"github.com/srilaxmialankar/storefront-golang/internal/pricing"
	"github.com/srilaxmialankar/storefront-golang/internal/routes"
	"github.com/srilaxmialankar/storefront-golang/internal/wishlist"
	"github.com/srilaxmialankar/storefront-golang/pkg/logx"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		fmt.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("CRITICAL ERROR: invalid configuration: %v\n", err)
		return
	}

	logx.Init(cfg.Environment)
	log := logx.With("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. --- Local Store (token / user / favorites) ---
	var store localstore.Store
	if cfg.RedisURL != "" {
		redisStore, err := localstore.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to redis store")
		}
		defer redisStore.Close()
		store = redisStore
		log.Info().Msg("using redis local store")
	} else {
		fileStore, err := localstore.NewFileStore(cfg.StorePath)
		if err != nil {
			log.Fatal().Err(err).Msg("open file store")
		}
		store = fileStore
		log.Info().Str("path", cfg.StorePath).Msg("using file local store")
	}

	// 2. --- Session + Backend Client ---
	// The session supplies the bearer token for every backend call; the
	// backend client supplies the auth API the session logs in through.
	session := auth.NewSession(store)
	client := backend.New(cfg, session.Token)
	session.AttachAPI(client)
	session.Restore(ctx)

	// 3. --- Catalog, Pricing and Wishlist State ---
	view := catalog.NewView(cfg.PageSize)
	prices := pricing.NewStore(view)
	favorites := wishlist.New(client, store)
	if userID := session.UserID(); userID != "" {
		favorites.Load(ctx, userID)
	}

	// 4. --- Live Gold-Price Feed ---
	feed := pricefeed.New(cfg.GoldPriceWSURL, client.GetTodayPrices, prices.SetTable, pricefeed.Options{
		ConnectTimeout: cfg.ConnectTimeout,
		ReconnectDelay: cfg.ReconnectDelay,
		PollInterval:   cfg.PollInterval,
	})

	// 5. --- Initial Catalog Load ---
	// Failures here are not fatal: the handlers refetch on demand and serve
	// cached data when the backend misbehaves.
	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if products, err := client.GetProducts(loadCtx, backend.ProductQuery{}); err != nil {
		log.Error().Err(err).Msg("initial product load failed")
	} else {
		view.SetProducts(products)
		prices.Recompute()
	}
	cancel()

	if err := feed.Start(ctx); err != nil {
		log.Error().Err(err).Msg("start price feed")
	}

	// --- Router Setup ---
	app := &handlers.Handlers{
		Cfg:      cfg,
		Backend:  client,
		Session:  session,
		Store:    store,
		Feed:     feed,
		Catalog:  view,
		Prices:   prices,
		Wishlist: favorites,
	}
	router := routes.SetupRouter(app)

	// --- Start Server ---
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("starting storefront API server")
		serverErr <- router.Run(fmt.Sprintf(":%d", cfg.Port))
	}()

	// A server failure takes the same teardown path as a signal, so the
	// feed always stops cleanly.
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		log.Error().Err(err).Msg("server stopped")
	}

	// --- Shutdown ---
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := feed.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("stop price feed")
	}
	log.Info().Msg("shutdown complete")
}
