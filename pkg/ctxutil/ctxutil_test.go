package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestWithUserID_And_UserIDFromCtx(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithUserID(context.Background(), id)

	got, ok := UserIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid UUID")
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestUserIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := UserIDFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != uuid.Nil {
		t.Fatalf("expected uuid.Nil, got %s", got)
	}
}

func TestUserIDFromCtx_NilUUID(t *testing.T) {
	t.Parallel()

	ctx := WithUserID(context.Background(), uuid.Nil)
	_, ok := UserIDFromCtx(ctx)
	if ok {
		t.Fatal("expected ok=false for nil UUID")
	}
}

func TestWithTenantID_And_TenantIDFromCtx(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithTenantID(context.Background(), id)

	got, ok := TenantIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid UUID")
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestTenantIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if _, ok := TenantIDFromCtx(context.Background()); ok {
		t.Fatal("expected ok=false for empty context")
	}
}

func TestTenantAndUserAreIndependent(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	ctx := WithTenantID(context.Background(), tenantID)

	if _, ok := UserIDFromCtx(ctx); ok {
		t.Fatal("tenant ID must not leak into user ID slot")
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Fatalf("expected req-123, got %q", got)
	}
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestLanguage_DefaultsToEnglish(t *testing.T) {
	t.Parallel()

	if got := LanguageFromCtx(context.Background()); got != "en" {
		t.Fatalf("expected en, got %q", got)
	}

	ctx := WithLanguage(context.Background(), "pt-BR")
	if got := LanguageFromCtx(ctx); got != "pt-BR" {
		t.Fatalf("expected pt-BR, got %q", got)
	}

	ctx = WithLanguage(context.Background(), "")
	if got := LanguageFromCtx(ctx); got != "en" {
		t.Fatalf("empty language should fall back to en, got %q", got)
	}
}
