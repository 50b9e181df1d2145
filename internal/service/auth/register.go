package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/carbonaegis/aegis-backend/internal/domain"
)

// Register creates a new organization and its first user account.
// Returns ErrAlreadyExists if the email is already taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	// Normalize input before validation.
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	input.OrganizationName = strings.TrimSpace(input.OrganizationName)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	role := domain.RoleMember
	if input.Role != "" {
		parsed, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	// Organization and first user are created atomically. Email uniqueness
	// is enforced by a DB constraint.
	var createdUser *domain.User

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now()

		org, err := s.orgs.Create(txCtx, &domain.Organization{
			ID:        uuid.New(),
			Name:      input.OrganizationName,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("create organization: %w", err)
		}

		user, err := s.users.Create(txCtx, &domain.User{
			ID:             uuid.New(),
			OrganizationID: org.ID,
			Email:          input.Email,
			Name:           input.Name,
			PasswordHash:   string(hash),
			Role:           role,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		createdUser = user
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	result, err := s.issueTokens(ctx, createdUser)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", createdUser.ID.String()),
		slog.String("organization_id", createdUser.OrganizationID.String()))

	return result, nil
}
