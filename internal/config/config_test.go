package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Client.BaseURL != "http://localhost:8080" {
		t.Fatalf("BaseURL = %q, want local default", cfg.Client.BaseURL)
	}
	if cfg.Client.Timeout != 15*time.Second {
		t.Fatalf("Timeout = %v, want 15s", cfg.Client.Timeout)
	}
	if cfg.Client.LoadConcurrency != 8 {
		t.Fatalf("LoadConcurrency = %d, want 8", cfg.Client.LoadConcurrency)
	}
	if cfg.Server.Port != "8080" || cfg.Server.SimulationSchedule != "0 3 1 * *" {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SAVINGS_API_URL": "https://savings.example.com",
		"SAVINGS_TOKEN":   "tok",
		"SAVINGS_EMAIL":   "sarah@example.com",
		"SAVINGS_TIMEOUT": "3s",
		"KMS_KEY_NAME":    "projects/p/locations/l/keyRings/r/cryptoKeys/k",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Client.BaseURL != "https://savings.example.com" || cfg.Client.Token != "tok" || cfg.Client.Email != "sarah@example.com" {
		t.Fatalf("unexpected client config: %+v", cfg.Client)
	}
	if cfg.Client.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %v, want 3s", cfg.Client.Timeout)
	}
	if cfg.Server.KMSKeyName == "" {
		t.Fatalf("KMSKeyName was not read")
	}
}

func TestLoadFromRejectsBadDuration(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SAVINGS_TIMEOUT": "soon",
	}))
	if err == nil {
		t.Fatalf("expected error for malformed duration")
	}
}
