// Package token reads session token claims.
package token

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

// JWTInspector reads the exp claim of session tokens. With a public key it
// also verifies the RS256 signature; without one the token is parsed
// unverified, since the backend remains the authority on every call.
type JWTInspector struct {
	publicKey *rsa.PublicKey
}

var _ ports.TokenInspector = (*JWTInspector)(nil)

func NewJWTInspector(publicKey *rsa.PublicKey) *JWTInspector {
	return &JWTInspector{publicKey: publicKey}
}

func (i *JWTInspector) Expiry(tokenString string) (time.Time, error) {
	claims := jwt.MapClaims{}

	if i.publicKey == nil {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return time.Time{}, fmt.Errorf("parse token: %w", err)
		}
	} else {
		// Expired tokens still parse so the caller can decide what to do.
		_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return i.publicKey, nil
		}, jwt.WithoutClaimsValidation())
		if err != nil {
			return time.Time{}, fmt.Errorf("verify token: %w", err)
		}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
