package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// AccessTokenGenerator creates the opaque per-order secrets embedded in
// shareable tracking links. Tokens are never reused across orders.
type AccessTokenGenerator interface {
	Generate() (string, error)
}

// RandomTokenGenerator produces hex-encoded random tokens.
type RandomTokenGenerator struct {
	size int
}

// NewRandomTokenGenerator creates a generator for tokens of size random
// bytes (2*size hex characters). Non-positive sizes fall back to 16 bytes.
func NewRandomTokenGenerator(size int) *RandomTokenGenerator {
	if size <= 0 {
		size = 16
	}
	return &RandomTokenGenerator{size: size}
}

func (g *RandomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
