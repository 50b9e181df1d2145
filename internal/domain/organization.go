package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a tenant: a company whose emissions are tracked.
type Organization struct {
	ID        uuid.UUID
	Name      string
	Industry  *string
	Country   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is an account belonging to one organization. Consultants belong to
// their consultancy's organization and act on client organizations
// selected per request.
type User struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	Name           string
	PasswordHash   string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AuthToken is a hashed refresh token issued to a user.
type AuthToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsExpired reports whether the token has passed its expiry at the given time.
func (t *AuthToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
