package middleware

import (
	"context"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrForbidden if the context user is not an
// admin. Use in handlers, not as HTTP middleware.
func RequireAdmin(ctx context.Context) error {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if identity.Role != domain.RoleAdmin.String() {
		return domain.ErrForbidden
	}
	return nil
}
