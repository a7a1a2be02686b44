package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/primemotors/inventory-service/internal/auth"
	"github.com/primemotors/inventory-service/internal/domain"
	"github.com/primemotors/inventory-service/internal/repository"
	apperrors "github.com/primemotors/inventory-service/pkg/util"
)

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, time.Time, error)
}

// SecretSource yields the current rotating edit password.
type SecretSource interface {
	Current() string
}

// AuthService coordinates login and secret disclosure.
type AuthService struct {
	users   repository.UserRepository
	tokens  TokenIssuer
	secrets SecretSource
	limiter *LoginLimiter
	logger  *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Tokens   TokenIssuer
	Secrets  SecretSource
	Limiter  *LoginLimiter
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:   deps.UserRepo,
		tokens:  deps.Tokens,
		secrets: deps.Secrets,
		limiter: deps.Limiter,
		logger:  logger,
	}
}

// Login verifies credentials and issues a token carrying the user's identity and role.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("username and password required", nil)
	}
	if err := s.limiter.Check(ctx, username); err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.limiter.RecordFailure(ctx, username)
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	ok, err := auth.ComparePassword(user.PasswordHash, password)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if !ok {
		s.limiter.RecordFailure(ctx, username)
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	s.limiter.Reset(ctx, username)

	token, exp, err := s.tokens.Issue(domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, token, exp, nil
}

// Logout is a no-op; tokens are stateless and expire on their own.
func (s *AuthService) Logout(_ context.Context, _ *domain.Identity) error {
	return nil
}

// CurrentUser loads the account behind a verified identity.
func (s *AuthService) CurrentUser(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	if identity == nil {
		return nil, apperrors.NewUnauthenticated("authentication required")
	}
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// RotatingPassword returns the live edit password. Callers must have passed the role gate.
func (s *AuthService) RotatingPassword() string {
	return s.secrets.Current()
}
