package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/secureapp/identity-service/internal/core/domain"
	"github.com/secureapp/identity-service/internal/core/ports"
	"github.com/secureapp/identity-service/internal/core/token"
)

// AuthService implements credential verification and token issuance.
type AuthService struct {
	users   ports.UserRepository
	roles   ports.RoleService
	issuer  *token.Issuer
	limiter ports.LoginLimiter
	audit   ports.AuditRecorder
	log     zerolog.Logger
}

// NewAuthService wires the auth use cases. limiter and audit may be nil in
// tests; both are best-effort and never fail a login on their own.
func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleService,
	issuer *token.Issuer,
	limiter ports.LoginLimiter,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		roles:   roles,
		issuer:  issuer,
		limiter: limiter,
		audit:   audit,
		log:     log,
	}
}

// Login verifies the credentials and mints a signed token carrying the
// user's roles. Unknown user, wrong password, and inactive account all
// return domain.ErrInvalidCredentials so the response cannot be used for
// user enumeration.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		locked, err := s.limiter.TooManyAttempts(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter unavailable, proceeding")
		} else if locked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.loginFailed(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	roles, err := s.roles.ListRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	signed, claims, err := s.issuer.Issue(user, roles)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login limiter")
		}
	}
	s.recordAudit(username, domain.AuditLogin, user.ID, domain.AuditSuccess)
	s.log.Info().Str("username", user.Username).Msg("login succeeded")

	return &ports.LoginResult{
		Token:      signed,
		Username:   user.Username,
		Roles:      roles,
		Expiration: claims.ExpiresAt.Time,
	}, nil
}

// Register hashes the password and creates the identity, granting the
// well-known User role so a fresh login carries a usable claim set. Inputs
// are expected to be pre-sanitized by the validation layer; empty fields are
// still rejected here as a final guard.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if _, err := s.roles.Assign(ctx, created.ID, domain.RoleUser); err != nil {
		s.log.Error().Err(err).Str("user_id", created.ID).Msg("failed to grant default role")
	}

	s.recordAudit(created.Username, domain.AuditRegister, created.ID, domain.AuditSuccess)
	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *AuthService) loginFailed(ctx context.Context, username string) {
	if s.limiter != nil {
		if err := s.limiter.RecordFailure(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	s.recordAudit(username, domain.AuditLogin, "", domain.AuditFailure)
}

func (s *AuthService) recordAudit(actor, action, target, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.AuditEventInput{
		Actor:     actor,
		Action:    action,
		Target:    target,
		Outcome:   outcome,
		Timestamp: time.Now().UTC(),
	})
}
