package config

import (
	"os"
	"testing"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	original, existed := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
	t.Cleanup(func() {
		if !existed {
			_ = os.Unsetenv(key)
			return
		}
		_ = os.Setenv(key, original)
	})
}

func TestDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "EMERGENCY_NUMBER", "DISCLAIMER_TEXT", "ENABLE_CACHE", "CORS_ORIGINS"} {
		unsetEnv(t, key)
	}

	cfg := New()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Environment != "development" || cfg.IsProduction() {
		t.Fatalf("expected development environment by default")
	}
	if cfg.EmergencyNumber != "108" {
		t.Fatalf("expected emergency number 108, got %s", cfg.EmergencyNumber)
	}
	if cfg.DisclaimerText != "For awareness only. Always consult doctors." {
		t.Fatalf("unexpected disclaimer text %q", cfg.DisclaimerText)
	}
	if cfg.EnableCache {
		t.Fatalf("expected cache to be disabled by default")
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected two default CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestSiteCopyIsSanitized(t *testing.T) {
	t.Setenv("DISCLAIMER_TEXT", "<script>alert(1)</script><b>Consult a doctor</b>")
	t.Setenv("EMERGENCY_NUMBER", "<i></i>")

	cfg := New()
	if cfg.DisclaimerText != "Consult a doctor" {
		t.Fatalf("expected markup to be stripped, got %q", cfg.DisclaimerText)
	}
	if cfg.EmergencyNumber != "108" {
		t.Fatalf("expected empty sanitized value to fall back to default, got %q", cfg.EmergencyNumber)
	}
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "lots")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg := New()
	if cfg.RateLimitRequests != 120 {
		t.Fatalf("expected fallback 120, got %d", cfg.RateLimitRequests)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}
