package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestIdentityRoundTrip(t *testing.T) {
	t.Parallel()

	want := Identity{
		UserID:         uuid.New(),
		OrganizationID: uuid.New(),
		Role:           "consultant",
	}

	ctx := WithIdentity(context.Background(), want)

	got, ok := IdentityFromCtx(ctx)
	if !ok {
		t.Fatal("expected identity to be present")
	}
	if got != want {
		t.Errorf("identity: got %+v, want %+v", got, want)
	}
}

func TestIdentityFromCtx_Missing(t *testing.T) {
	t.Parallel()

	_, ok := IdentityFromCtx(context.Background())
	if ok {
		t.Error("expected no identity in empty context")
	}
}

func TestIdentityFromCtx_NilUserID(t *testing.T) {
	t.Parallel()

	ctx := WithIdentity(context.Background(), Identity{OrganizationID: uuid.New()})

	_, ok := IdentityFromCtx(ctx)
	if ok {
		t.Error("identity with nil user ID must be treated as absent")
	}
}

func TestUserIDFromCtx(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ctx := WithIdentity(context.Background(), Identity{UserID: userID})

	got, ok := UserIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected user ID to be present")
	}
	if got != userID {
		t.Errorf("user ID: got %v, want %v", got, userID)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Errorf("request ID: got %q, want %q", got, "req-123")
	}

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("empty context request ID: got %q, want empty", got)
	}
}
