package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/secureapp/identity-service/internal/core/domain"
	"github.com/secureapp/identity-service/internal/core/ports"
)

// RoleService maintains the user↔role relation. Absence of the target user
// is a soft failure (false, nil); storage problems are real errors.
//
// No in-process locking: concurrent Assign/Remove on the same (user, role)
// pair rely on the store's unique-constraint atomicity, and the
// check-then-act sequence tolerates the benign race where two assigns both
// succeed — the end state is identical.
type RoleService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewRoleService(users ports.UserRepository, roles ports.RoleRepository, audit ports.AuditRecorder, log zerolog.Logger) *RoleService {
	return &RoleService{users: users, roles: roles, audit: audit, log: log}
}

// Assign grants role to the user, creating the role on first use. Repeating
// an existing grant is a no-op success.
func (s *RoleService) Assign(ctx context.Context, userID, role string) (bool, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	exists, err := s.roles.RoleExists(ctx, role)
	if err != nil {
		return false, err
	}
	if !exists {
		if err := s.roles.CreateRole(ctx, role); err != nil {
			return false, err
		}
		s.log.Info().Str("role", role).Msg("role created")
	}

	bound, err := s.roles.HasBinding(ctx, userID, role)
	if err != nil {
		return false, err
	}
	if bound {
		return true, nil
	}

	if err := s.roles.AddBinding(ctx, userID, role); err != nil {
		return false, err
	}
	s.recordAudit(userID, role, domain.AuditRoleAssign)
	return true, nil
}

// Remove revokes role from the user. A missing binding is a no-op success.
func (s *RoleService) Remove(ctx context.Context, userID, role string) (bool, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	bound, err := s.roles.HasBinding(ctx, userID, role)
	if err != nil {
		return false, err
	}
	if !bound {
		return true, nil
	}

	if err := s.roles.RemoveBinding(ctx, userID, role); err != nil {
		return false, err
	}
	s.recordAudit(userID, role, domain.AuditRoleRemove)
	return true, nil
}

// ListRoles returns the user's role names in assignment order. Unknown users
// yield an empty slice, never an error.
func (s *RoleService) ListRoles(ctx context.Context, userID string) ([]string, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return s.roles.ListRoles(ctx, userID)
}

// EnsureWellKnownRoles idempotently creates every role in the well-known
// set. Run once at process start.
func (s *RoleService) EnsureWellKnownRoles(ctx context.Context) error {
	for _, role := range domain.WellKnownRoles {
		exists, err := s.roles.RoleExists(ctx, role)
		if err != nil {
			return fmt.Errorf("ensure role %s: %w", role, err)
		}
		if exists {
			continue
		}
		if err := s.roles.CreateRole(ctx, role); err != nil {
			return fmt.Errorf("ensure role %s: %w", role, err)
		}
		s.log.Info().Str("role", role).Msg("well-known role created")
	}
	return nil
}

func (s *RoleService) recordAudit(userID, role, action string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.AuditEventInput{
		Actor:     userID,
		Action:    action,
		Target:    userID + ":" + role,
		Outcome:   domain.AuditSuccess,
		Timestamp: time.Now().UTC(),
	})
}
