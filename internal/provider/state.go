package provider

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// ChallengeMethod is the only PKCE transform supported.
const ChallengeMethod = "S256"

// NewState returns a hex-encoded anti-CSRF token with 16 bytes of entropy.
// An RNG failure is a fatal process condition, not a user-visible error.
func NewState() string {
	return hex.EncodeToString(mustRand(16))
}

// NewVerifier returns a URL-safe PKCE code verifier with 32 bytes of entropy.
// The verifier stays server-side; only the derived challenge goes out.
func NewVerifier() string {
	return base64.RawURLEncoding.EncodeToString(mustRand(32))
}

// Challenge derives the S256 code challenge for a verifier: the unpadded
// URL-safe base64 encoding of SHA-256(verifier).
func Challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func mustRand(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("provider: crypto/rand unavailable: " + err.Error())
	}
	return b
}
