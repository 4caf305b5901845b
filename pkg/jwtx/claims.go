// Package jwtx verifies the access tokens minted by the portal's auth
// service. This service never signs tokens, it only checks them.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrIssuer       = errors.New("jwtx: unexpected issuer")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
)

// Claims are the access-token claims shared across portal services.
type Claims struct {
	jwt.RegisteredClaims

	// Permission scopes, e.g. "collab:read collab:write" split into a slice.
	Scopes []string `json:"scopes,omitempty"`

	// DisplayName is the account's preferred display name.
	DisplayName string `json:"display_name,omitempty"`
}

// ValidateIssuer checks the iss claim against the expected issuer.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
