package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"konaseema-kart/internal/auth"
	"konaseema-kart/internal/cart"
	"konaseema-kart/internal/catalog"
	"konaseema-kart/internal/checkout"
	"konaseema-kart/internal/config"
	"konaseema-kart/internal/coupon"
	"konaseema-kart/internal/database"
	"konaseema-kart/internal/handler"
	"konaseema-kart/internal/notify"
	"konaseema-kart/internal/repository"
	"konaseema-kart/internal/router"
	"konaseema-kart/internal/shipping"
	"konaseema-kart/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting konaseema-kart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	addressRepo := repository.NewAddressRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)

	// Initialize the snapshot store for carts and shipping drafts
	var snapshots storage.Port
	if cfg.Storage.Dir != "" {
		snapshots, err = storage.NewFile(cfg.Storage.Dir)
		if err != nil {
			return fmt.Errorf("failed to initialize snapshot store: %w", err)
		}
		logger.Info().Str("dir", cfg.Storage.Dir).Msg("using file-backed snapshot store")
	} else {
		snapshots = storage.NewMemory()
		logger.Info().Msg("using in-memory snapshot store")
	}

	// Initialize the catalogue feed client
	feed := catalog.NewClient(
		cfg.Feed.ProductsURL,
		cfg.Feed.CombosURL,
		time.Duration(cfg.Feed.TimeoutSeconds)*time.Second,
		logger,
	)

	// Initialize domain components
	carts := cart.NewManager(snapshots, logger)
	evaluator := coupon.NewEvaluator(couponRepo, cfg.Checkout.CurrencySymbol, logger)

	shippingPolicy, err := shipping.FromConfig(cfg.Shipping.Policy, cfg.Shipping.FlatFee, cfg.Shipping.Tiers)
	if err != nil {
		return fmt.Errorf("failed to initialize shipping policy: %w", err)
	}

	tokens, err := auth.NewManager(cfg.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize token manager: %w", err)
	}

	var notifier checkout.Notifier
	if cfg.Checkout.WhatsAppNumber != "" {
		notifier, err = notify.NewWhatsApp(cfg.Checkout.WhatsAppNumber, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize notifier: %w", err)
		}
	} else {
		logger.Warn().Msg("no WhatsApp number configured, confirmation handoff disabled")
	}

	sequencer := checkout.NewSequencer(
		addressRepo,
		orderRepo,
		auth.ContextIdentity{},
		evaluator,
		shippingPolicy,
		notifier,
		snapshots,
		cfg.Checkout.Currency,
		cfg.Checkout.CurrencySymbol,
		logger,
	)

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(feed, logger)
	cartHandler := handler.NewCartHandler(carts, feed, logger)
	couponHandler := handler.NewCouponHandler(carts, evaluator, shippingPolicy, logger)
	checkoutHandler := handler.NewCheckoutHandler(carts, sequencer, logger)
	orderHandler := handler.NewOrderHandler(orderRepo, logger)

	// Initialize router
	mux := router.New(
		catalogHandler,
		cartHandler,
		couponHandler,
		checkoutHandler,
		orderHandler,
		tokens,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
