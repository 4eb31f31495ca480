package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/stockwatch/stockwatch-go/internal/config"
	"github.com/stockwatch/stockwatch-go/internal/crypto"
	"github.com/stockwatch/stockwatch-go/internal/model"
	"github.com/stockwatch/stockwatch-go/internal/stub"
	"github.com/stockwatch/stockwatch-go/pkg/logger"
)

func main() {
	logger.Init(true)

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	store := stub.NewStore()
	if os.Getenv("STUB_SEED_DEMO") != "" {
		seedDemoData(store)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: stub.NewRouter(store, cfg.JWTSecret, cfg.JWTExpiry),
	}

	go func() {
		slog.Info("stub backend starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down stub backend")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("stub backend stopped")
}

// seedDemoData creates a demo account with a small watchlist and a couple of
// triggered alerts, so the CLI has something to show against a fresh stub.
func seedDemoData(store *stub.Store) {
	// Password "secret"; hashing it here keeps the login path honest.
	if err := demoUser(store, "alice", "alice@example.com", "secret"); err != nil {
		slog.Error("failed to seed demo user", "error", err)
		return
	}

	min := 150.0
	max := 200.0
	store.AddStock("alice", model.WatchedStockRequest{Symbol: "AAPL", MinPrice: &min, MaxPrice: &max})

	nvdaMax := 900.0
	store.AddStock("alice", model.WatchedStockRequest{Symbol: "NVDA", MaxPrice: &nvdaMax})

	store.SeedAlert("alice", model.Alert{
		Symbol:         "AAPL",
		CurrentPrice:   201.30,
		ThresholdPrice: 200.0,
		AlertType:      model.AlertMaxPriceExceeded,
	})
	store.SeedAlert("alice", model.Alert{
		Symbol:         "AAPL",
		CurrentPrice:   148.75,
		ThresholdPrice: 150.0,
		AlertType:      model.AlertMinPriceExceeded,
	})

	slog.Info("seeded demo data", "user", "alice", "password", "secret")
}

func demoUser(store *stub.Store, username, email, password string) error {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	return store.CreateUser(username, email, hash)
}
