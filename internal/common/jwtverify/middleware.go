package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	commonerrors "github.com/accounthub/user-service/internal/common/errors"
	commonhttp "github.com/accounthub/user-service/internal/common/http"
	"github.com/accounthub/user-service/internal/common/logger"
	"github.com/accounthub/user-service/internal/observability/metrics"
)

// Claims is the identity a verified session token proves.
type Claims struct {
	UserID string
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

// Middleware gates protected routes: a request either carries a verifiable
// bearer token and proceeds authenticated, or it is rejected with 401. There
// is no third state.
func Middleware(secret string, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				log.Warnf("auth failed path=%s: missing or invalid authorization header", r.URL.Path)
				commonhttp.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
				return
			}

			tokenString := strings.TrimPrefix(raw, "Bearer ")
			claims, err := ParseToken(tokenString, secretBytes)
			if err != nil {
				log.Warnf("auth failed path=%s: %v", r.URL.Path, err)
				commonhttp.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Claims, bool) {
	val := ctx.Value(claimsKey)
	claims, ok := val.(Claims)
	return claims, ok
}

// ParseToken verifies the signature and extracts the identity from the
// `{"user": {"id": ...}}` payload. Tokens carry no expiry claim, so a valid
// signature is accepted regardless of age. Every failure path answers
// commonerrors.ErrInvalidToken with the underlying reason attached as cause.
func ParseToken(tokenString string, secret []byte) (Claims, error) {
	metrics.TokenValidationsTotal.Inc()

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		metrics.TokenValidationsFailed.Inc()
		if err != nil {
			return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
		}
		return Claims{}, commonerrors.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		metrics.TokenValidationsFailed.Inc()
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(errors.New("invalid claims type"))
	}

	userClaim, ok := mapClaims["user"].(map[string]any)
	if !ok {
		metrics.TokenValidationsFailed.Inc()
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(errors.New("missing user claim"))
	}

	id, _ := userClaim["id"].(string)
	if id == "" {
		metrics.TokenValidationsFailed.Inc()
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(errors.New("missing user id claim"))
	}

	return Claims{UserID: id}, nil
}
