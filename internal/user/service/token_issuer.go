package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/accounthub/user-service/internal/common/jwtverify"
	"github.com/accounthub/user-service/internal/user/domain"
)

// TokenIssuer mints stateless session tokens. The payload is only the user
// identity; tokens carry no expiry claim, so they stay valid until the
// signing secret rotates. A pure function of identity + secret, no I/O.
type TokenIssuer struct {
	jwtSecret []byte
}

func NewTokenIssuer(jwtSecret string) *TokenIssuer {
	return &TokenIssuer{jwtSecret: []byte(jwtSecret)}
}

func (ti *TokenIssuer) Issue(id domain.ID) (string, error) {
	claims := jwt.MapClaims{
		"user": map[string]any{
			"id": string(id),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	incrementSessionTokensIssued()
	return tokenString, nil
}

func (ti *TokenIssuer) Verify(tokenString string) (domain.ID, error) {
	claims, err := jwtverify.ParseToken(tokenString, ti.jwtSecret)
	if err != nil {
		return "", err
	}
	return domain.ID(claims.UserID), nil
}
