package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"shipquote/internal/cache"
	"shipquote/internal/calc"
	"shipquote/internal/company"
	"shipquote/internal/config"
	"shipquote/internal/db"
	"shipquote/internal/quote"
	"shipquote/internal/refdata"
	"shipquote/internal/server"
)

func main() {
	// Optional .env for local development; real environments set vars directly.
	_ = godotenv.Load()
	cfg := config.Load()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatalf("DATABASE_URL not set. Please export DATABASE_URL before running.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer pool.Close()
	// Verify connectivity proactively
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("database ping failed: %v", err)
	}

	var store cache.Store
	switch cfg.CacheBackend {
	case "postgres":
		store = cache.NewPostgres(pool)
	case "memory":
		store = cache.NewMemory()
	default:
		store = cache.Noop{}
	}

	ref := refdata.NewPGStore(pool)
	catalog := refdata.NewCatalog(ref, ref)
	builder := quote.NewBuilder(catalog)
	factory := calc.NewFactory(http.DefaultClient, store, cfg.PartnerRateLimitRPS)
	companies := company.NewStore(pool)

	r := server.New(builder, factory, companies, catalog)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("api listening on :%s (CACHE_BACKEND=%s)", cfg.Port, cfg.CacheBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Println("server error:", err)
		os.Exit(1)
	}
}
