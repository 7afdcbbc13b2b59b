package token

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return privateKey, &privateKey.PublicKey
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestExpiry_Verified(t *testing.T) {
	priv, pub := generateTestKeys(t)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signToken(t, priv, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})

	got, err := NewJWTInspector(pub).Expiry(tok)

	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

func TestExpiry_ExpiredTokenStillParses(t *testing.T) {
	priv, pub := generateTestKeys(t)
	exp := time.Now().Add(-time.Hour).Truncate(time.Second)
	tok := signToken(t, priv, jwt.MapClaims{"exp": exp.Unix()})

	got, err := NewJWTInspector(pub).Expiry(tok)

	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

func TestExpiry_WrongKey(t *testing.T) {
	priv, _ := generateTestKeys(t)
	_, otherPub := generateTestKeys(t)
	tok := signToken(t, priv, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	_, err := NewJWTInspector(otherPub).Expiry(tok)
	assert.Error(t, err)
}

func TestExpiry_UnverifiedWithoutKey(t *testing.T) {
	priv, _ := generateTestKeys(t)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signToken(t, priv, jwt.MapClaims{"exp": exp.Unix()})

	got, err := NewJWTInspector(nil).Expiry(tok)

	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

func TestExpiry_NoExpClaim(t *testing.T) {
	priv, pub := generateTestKeys(t)
	tok := signToken(t, priv, jwt.MapClaims{"sub": "u1"})

	got, err := NewJWTInspector(pub).Expiry(tok)

	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestExpiry_Garbage(t *testing.T) {
	_, err := NewJWTInspector(nil).Expiry("not-a-token")
	assert.Error(t, err)
}
