package config

import (
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL string
	Port        string
	// CacheBackend selects the quote result cache: "postgres", "memory"
	// or "off". The cache is optional; "off" disables memoization.
	CacheBackend string
	// PartnerRateLimitRPS throttles outbound partner calculator calls.
	// Zero disables the limiter.
	PartnerRateLimitRPS float64
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	backend := os.Getenv("CACHE_BACKEND")
	if backend == "" {
		backend = "postgres"
	}
	var rps float64
	if v := os.Getenv("PARTNER_RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			rps = f
		}
	}
	return Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		Port:                port,
		CacheBackend:        backend,
		PartnerRateLimitRPS: rps,
	}
}
