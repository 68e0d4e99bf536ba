// Package token generates verification codes and their expiry timestamps.
// All functions are stateless and safe for concurrent use.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

const shortCodeDigits = 6

// NewShortCode returns a fixed-width numeric code suitable for manual entry
// in the mobile app.
func NewShortCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < shortCodeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate short code: %w", err)
	}
	return fmt.Sprintf("%0*d", shortCodeDigits, n), nil
}

// NewOpaqueToken returns a cryptographically random 64-character hex token
// for link-based flows.
func NewOpaqueToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate opaque token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Expiry returns the UTC instant d from now.
func Expiry(d time.Duration) time.Time {
	return time.Now().UTC().Add(d)
}

// Expired reports whether t is in the past.
func Expired(t time.Time) bool {
	return time.Now().UTC().After(t)
}
