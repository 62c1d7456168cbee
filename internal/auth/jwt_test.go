package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidate(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "storeadm", time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "admin@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got != userID {
		t.Fatalf("user id: got %s, want %s", got, userID)
	}
}

func TestValidate_Empty(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "storeadm", time.Hour)
	if _, err := m.ValidateAccessToken(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	m1 := NewJWTManager(testSecret, "storeadm", time.Hour)
	m2 := NewJWTManager(strings.Repeat("x", 32), "storeadm", time.Hour)

	token, err := m1.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m2.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for token signed with different secret")
	}
}

func TestValidate_WrongIssuer(t *testing.T) {
	t.Parallel()

	m1 := NewJWTManager(testSecret, "other-issuer", time.Hour)
	m2 := NewJWTManager(testSecret, "storeadm", time.Hour)

	token, err := m1.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m2.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "storeadm", -time.Minute)
	token, err := m.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}
