package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreBackend != StoreMemory {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DatasetTTL != time.Hour {
		t.Fatalf("expected 1h TTL, got %v", cfg.DatasetTTL)
	}
	if cfg.MapZoom != 5 {
		t.Fatalf("expected zoom 5, got %d", cfg.MapZoom)
	}
	if cfg.MaxUploadBytes() != 32<<20 {
		t.Fatalf("unexpected upload limit %d", cfg.MaxUploadBytes())
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_BACKEND": "redis",
		"DATASET_TTL":   "15m",
		"REDIS_ADDR":    "cache:6379",
		"ENV":           "production",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreBackend != StoreRedis || cfg.DatasetTTL != 15*time.Minute || cfg.Redis.Addr != "cache:6379" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production env")
	}
}

func TestLoadFrom_RejectsUnknownBackend(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_BACKEND": "sqlite",
	}))
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadFrom_RejectsZoomOutOfRange(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"MAP_ZOOM": "25",
	}))
	if err == nil {
		t.Fatalf("expected validation error")
	}
}
