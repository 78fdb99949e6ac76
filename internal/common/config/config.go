package config

import (
	"fmt"
	"os"
	"time"

	"github.com/accounthub/user-service/internal/common/constants"
	commonerrors "github.com/accounthub/user-service/internal/common/errors"
)

type UserConfig struct {
	HTTPPort       string
	DatabaseURL    string
	JWTSecret      string
	RequestTimeout time.Duration
}

// LoadUserConfig reads the service configuration from the environment.
// DATABASE_URL and JWT_SECRET have no defaults: their absence is fatal at
// startup, never handled per-request.
func LoadUserConfig() (UserConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return UserConfig{}, err
	}

	if len(jwtSecret) < constants.JWTSecretMinLength {
		return UserConfig{}, fmt.Errorf("%w: got %d bytes", commonerrors.ErrInvalidJWTSecret, len(jwtSecret))
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return UserConfig{}, err
	}

	return UserConfig{
		HTTPPort:       getEnv("USER_HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL,
		JWTSecret:      jwtSecret,
		RequestTimeout: getDurationEnv("USER_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
