package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(ttl time.Duration) *JWTManager {
	return NewJWTManager(testSecret, "carbon-aegis", ttl)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestManager(time.Minute)
	want := Claims{
		UserID:         uuid.New(),
		OrganizationID: uuid.New(),
		Role:           "CONSULTANT",
	}

	token, err := m.GenerateAccessToken(want)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got != want {
		t.Errorf("claims: got %+v, want %+v", got, want)
	}
}

func TestAccessToken_Expired(t *testing.T) {
	t.Parallel()

	m := newTestManager(-time.Minute)
	token, err := m.GenerateAccessToken(Claims{
		UserID:         uuid.New(),
		OrganizationID: uuid.New(),
		Role:           "MEMBER",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestAccessToken_WrongIssuer(t *testing.T) {
	t.Parallel()

	other := NewJWTManager(testSecret, "someone-else", time.Minute)
	token, err := other.GenerateAccessToken(Claims{
		UserID:         uuid.New(),
		OrganizationID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	m := newTestManager(time.Minute)
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestAccessToken_TamperedSecret(t *testing.T) {
	t.Parallel()

	other := NewJWTManager(strings.Repeat("x", 32), "carbon-aegis", time.Minute)
	token, err := other.GenerateAccessToken(Claims{
		UserID:         uuid.New(),
		OrganizationID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	m := newTestManager(time.Minute)
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for wrong signing key")
	}
}

func TestAccessToken_Empty(t *testing.T) {
	t.Parallel()

	m := newTestManager(time.Minute)
	if _, err := m.ValidateAccessToken(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	t.Parallel()

	m := newTestManager(time.Minute)
	raw, hash, err := m.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if raw == "" || hash == "" {
		t.Fatal("raw and hash must be non-empty")
	}
	if HashToken(raw) != hash {
		t.Error("hash must match HashToken(raw)")
	}

	raw2, _, err := m.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate second: %v", err)
	}
	if raw == raw2 {
		t.Error("refresh tokens must be unique")
	}
}
