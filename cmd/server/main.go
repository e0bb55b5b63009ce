package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/markethub/storefront/internal"
	"github.com/markethub/storefront/internal/catalog"
	"github.com/markethub/storefront/internal/checkout"
	"github.com/markethub/storefront/internal/delivery"
	"github.com/markethub/storefront/internal/handler"
	"github.com/markethub/storefront/internal/middleware"
	"github.com/markethub/storefront/internal/promo"
	"github.com/markethub/storefront/internal/service"
	"github.com/markethub/storefront/internal/session"
)

func run() error {
	// Load configuration
	cfg := internal.LoadConfig()

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize the catalog
	logger.Info("Loading product catalog...")
	repo := catalog.NewMemoryRepository(catalog.Fixtures())

	// Initialize the session store
	sessions := session.NewStore(session.Options{
		TTL:              cfg.SessionTTL,
		SimulatedLatency: cfg.SimulatedLatency,
	})
	defer sessions.Close()

	// Delivery options and promo table
	deliveryProvider := delivery.NewStorefrontProvider()
	promoResolver := promo.NewStorefrontResolver()

	// Order number scheme
	var ids checkout.IDSource = checkout.TimestampIDSource{}
	if cfg.OrderIDScheme == "random" {
		ids = checkout.RandomIDSource{}
	}
	assembler := checkout.NewAssembler(ids, nil)

	// Initialize services
	cartService := service.NewCartService(sessions, repo, promoResolver)
	checkoutService := service.NewCheckoutService(sessions, repo, deliveryProvider, assembler)

	// API handler
	api := handler.New(repo, cartService, checkoutService, deliveryProvider, sessions, logger)

	// Metrics
	metrics := middleware.NewMetrics("storefront")

	// Route tree
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.WithRequestLogger(logger))
	r.Use(metrics.Middleware)
	r.Use(middleware.Recovery)

	r.Mount("/api", api.Routes())
	r.Handle("/metrics", metrics.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
