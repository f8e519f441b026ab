package config

import (
	"testing"
	"time"

	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWT.Secret == "" {
		t.Error("expected development fallback secret")
	}
	if cfg.JWT.ExpirationHours != 24 {
		t.Errorf("expected 24h expiry, got %d", cfg.JWT.ExpirationHours)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET in production")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DATABASE_DRIVER", "mysql")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "7")
	t.Setenv("X_BAD_INT", "seven")
	t.Setenv("X_DUR", "90s")
	t.Setenv("X_LEVEL", "silent")

	if got := getEnvAsInt("X_INT", 1); got != 7 {
		t.Errorf("getEnvAsInt = %d", got)
	}
	if got := getEnvAsInt("X_BAD_INT", 1); got != 1 {
		t.Errorf("getEnvAsInt fallback = %d", got)
	}
	if got := getEnvAsDuration("X_DUR", time.Second); got != 90*time.Second {
		t.Errorf("getEnvAsDuration = %v", got)
	}
	if got := getEnvAsLogLevel("X_LEVEL", logger.Info); got != logger.Silent {
		t.Errorf("getEnvAsLogLevel = %v", got)
	}
}
