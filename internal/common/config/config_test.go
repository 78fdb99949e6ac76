package config

import (
	"errors"
	"testing"
	"time"

	commonerrors "github.com/accounthub/user-service/internal/common/errors"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func TestLoadUserConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/users")

	cfg, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != "4000" {
		t.Errorf("expected default port 4000, got %s", cfg.HTTPPort)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected default timeout 5s, got %v", cfg.RequestTimeout)
	}
	if cfg.JWTSecret != testSecret {
		t.Error("expected secret to be loaded")
	}
}

func TestLoadUserConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/users")

	_, err := LoadUserConfig()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Fatalf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoadUserConfig_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/users")

	_, err := LoadUserConfig()
	if !errors.Is(err, commonerrors.ErrInvalidJWTSecret) {
		t.Fatalf("expected ErrInvalidJWTSecret, got %v", err)
	}
}

func TestLoadUserConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "")

	_, err := LoadUserConfig()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Fatalf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoadUserConfig_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/users")
	t.Setenv("USER_HTTP_PORT", "8080")
	t.Setenv("USER_REQUEST_TIMEOUT", "10s")

	cfg, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.RequestTimeout)
	}
}
