package provider

import (
	"encoding/hex"
	"testing"
)

func TestNewState_HexAnd16Bytes(t *testing.T) {
	s := NewState()
	if len(s) != 32 {
		t.Fatalf("state length = %d, want 32 hex chars", len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("state is not hex: %v", err)
	}
}

func TestNewState_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s := NewState()
		if seen[s] {
			t.Fatalf("duplicate state after %d draws: %q", i, s)
		}
		seen[s] = true
	}
}

func TestNewVerifier_Base64URLNoPadding(t *testing.T) {
	v := NewVerifier()
	// 32 bytes -> 43 chars de base64url sin padding
	if len(v) != 43 {
		t.Fatalf("verifier length = %d, want 43", len(v))
	}
	for _, r := range v {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			t.Fatalf("verifier contains non-base64url char %q", r)
		}
	}
}

// Vector de prueba del apéndice B de RFC 7636.
func TestChallenge_RFC7636Vector(t *testing.T) {
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	want := "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"

	if got := Challenge(verifier); got != want {
		t.Fatalf("Challenge(%q) = %q, want %q", verifier, got, want)
	}
}

func TestChallenge_Deterministic(t *testing.T) {
	v := NewVerifier()
	if Challenge(v) != Challenge(v) {
		t.Fatal("challenge is not deterministic for the same verifier")
	}
}
