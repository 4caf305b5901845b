package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, priv ed25519.PrivateKey, claims Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(priv)
	require.NoError(t, err)
	return raw
}

func TestEdDSAVerifier(t *testing.T) {
	t.Parallel()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "scholarly-auth",
			Subject:   "account-123",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
		Scopes:      []string{"collab:read", "collab:write"},
		DisplayName: "Dr. Example",
	}

	t.Run("accepts a valid token", func(t *testing.T) {
		v := NewEdDSAVerifier(pub, "scholarly-auth")
		got, err := v.Verify(signToken(t, priv, claims))
		require.NoError(t, err)
		require.Equal(t, "account-123", got.Subject)
		require.Equal(t, []string{"collab:read", "collab:write"}, got.Scopes)
		require.NoError(t, got.ValidateExpiry())
	})

	t.Run("rejects a wrong issuer", func(t *testing.T) {
		v := NewEdDSAVerifier(pub, "someone-else")
		_, err := v.Verify(signToken(t, priv, claims))
		require.ErrorIs(t, err, ErrIssuer)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		_, otherPriv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		v := NewEdDSAVerifier(pub, "scholarly-auth")
		_, err = v.Verify(signToken(t, otherPriv, claims))
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired tokens fail expiry validation", func(t *testing.T) {
		expired := claims
		expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

		require.ErrorIs(t, expired.ValidateExpiry(), ErrExpired)
	})
}
