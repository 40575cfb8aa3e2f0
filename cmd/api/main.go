package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solara-labs/cadenza/internal/adapters/postgres"
	"github.com/solara-labs/cadenza/internal/adapters/rest"
	"github.com/solara-labs/cadenza/internal/adapters/sqlite"
	"github.com/solara-labs/cadenza/internal/config"
	"github.com/solara-labs/cadenza/internal/core/ports"
	"github.com/solara-labs/cadenza/internal/core/services"
	"github.com/solara-labs/cadenza/internal/worker"
)

func main() {
	// 1. Configuration (Environment Variables)
	// It's best practice to crash early if required config is missing.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Invalid configuration: %v", err)
	}

	// 2. Initialize "Driven" Adapters (The Tools)
	// -- Database Adapter
	var repo ports.PayoutRepository
	var repoCloser func() error

	switch cfg.StorageDriver {
	case "sqlite":
		dbAdapter, err := sqlite.NewAdapter(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize database: %v", err)
		}
		repo = dbAdapter
		repoCloser = dbAdapter.Close
	case "postgres":
		dbAdapter, err := postgres.NewAdapter(&postgres.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize database: %v", err)
		}
		repo = dbAdapter
		repoCloser = dbAdapter.Close
	default:
		log.Fatalf("Unknown storage driver: %s", cfg.StorageDriver)
	}
	defer repoCloser()

	// -- Notification delivery pool
	pool := worker.NewPool(cfg.DeliveryQueue)
	pool.Start(cfg.DeliveryWorkers)
	defer pool.Stop()

	// 3. Initialize Core Logic (The Driver)
	// This is Dependency Injection in action.
	// We inject the specific adapters into the agnostic service.
	// The compiler guarantees that the db adapter implements ports.PayoutRepository
	// and the pool implements ports.Notifier.
	catalog := services.NewCatalog()
	svc := services.NewPlatform(catalog, pool, repo, cfg.PremiumPrice)

	// 4. Initialize "Driving" Adapter (The Interface)
	// The HTTP handler talks to the Service.
	handler := rest.NewHandler(svc)

	// 5. Start the Server
	log.Println("------------------------------------------------")
	log.Printf("🎶 Cadenza API is running on http://localhost%s", cfg.Addr)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
