package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/primemotors/inventory-service/internal/auth"
	"github.com/primemotors/inventory-service/internal/domain"
	apperrors "github.com/primemotors/inventory-service/pkg/util"
)

func newTestUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return &domain.User{ID: "user-1", Username: "acct", PasswordHash: hash, Role: domain.RoleAccounting}
}

func newLimiter(t *testing.T, max int) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, max, 15*time.Minute, nil), srv
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token without password material", func(t *testing.T) {
		users := new(mockUserRepo)
		user := newTestUser(t, "s3cret")
		users.On("GetByUsername", mock.Anything, "acct").Return(user, nil)
		issuer := &stubIssuer{}

		svc := NewAuthService(AuthDependencies{UserRepo: users, Tokens: issuer})
		got, token, exp, err := svc.Login(ctx, " acct ", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, user, got)
		assert.Equal(t, "signed-user-1", token)
		assert.False(t, exp.IsZero())
		require.Len(t, issuer.issued, 1)
		assert.Equal(t, domain.Identity{UserID: "user-1", Username: "acct", Role: domain.RoleAccounting}, issuer.issued[0])
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByUsername", mock.Anything, "acct").Return(newTestUser(t, "s3cret"), nil)
		issuer := &stubIssuer{}

		svc := NewAuthService(AuthDependencies{UserRepo: users, Tokens: issuer})
		_, _, _, err := svc.Login(ctx, "acct", "guess")

		assert.Equal(t, apperrors.CodeInvalidCredentials, apperrors.CodeOf(err))
		assert.Empty(t, issuer.issued)
	})

	t.Run("unknown user is invalid credentials", func(t *testing.T) {
		users := new(mockUserRepo)
		users.On("GetByUsername", mock.Anything, "ghost").Return(nil, pgx.ErrNoRows)

		svc := NewAuthService(AuthDependencies{UserRepo: users, Tokens: &stubIssuer{}})
		_, _, _, err := svc.Login(ctx, "ghost", "x")

		assert.Equal(t, apperrors.CodeInvalidCredentials, apperrors.CodeOf(err))
	})

	t.Run("blank input is rejected before lookup", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewAuthService(AuthDependencies{UserRepo: users, Tokens: &stubIssuer{}})

		_, _, _, err := svc.Login(ctx, "  ", "x")

		assert.Equal(t, apperrors.CodeValidationFailed, apperrors.CodeOf(err))
		users.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})
}

func TestAuthService_LoginLockout(t *testing.T) {
	ctx := context.Background()
	limiter, srv := newLimiter(t, 3)

	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, "acct").Return(newTestUser(t, "s3cret"), nil)
	svc := NewAuthService(AuthDependencies{UserRepo: users, Tokens: &stubIssuer{}, Limiter: limiter})

	for i := 0; i < 3; i++ {
		_, _, _, err := svc.Login(ctx, "acct", "wrong")
		assert.Equal(t, apperrors.CodeInvalidCredentials, apperrors.CodeOf(err))
	}

	_, _, _, err := svc.Login(ctx, "acct", "s3cret")
	assert.Equal(t, apperrors.CodeTooManyAttempts, apperrors.CodeOf(err))

	srv.FastForward(16 * time.Minute)
	_, _, _, err = svc.Login(ctx, "acct", "s3cret")
	assert.NoError(t, err)
}

func TestAuthService_SuccessResetsFailures(t *testing.T) {
	ctx := context.Background()
	limiter, srv := newLimiter(t, 3)

	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, "acct").Return(newTestUser(t, "s3cret"), nil)
	svc := NewAuthService(AuthDependencies{UserRepo: users, Tokens: &stubIssuer{}, Limiter: limiter})

	_, _, _, _ = svc.Login(ctx, "acct", "wrong")
	assert.True(t, srv.Exists(loginFailureKey("acct")))

	_, _, _, err := svc.Login(ctx, "acct", "s3cret")
	require.NoError(t, err)
	assert.False(t, srv.Exists(loginFailureKey("acct")))
}

func TestLoginLimiter_DegradesOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	limiter := NewLoginLimiter(client, 1, time.Minute, nil)

	limiter.RecordFailure(context.Background(), "acct")
	assert.NoError(t, limiter.Check(context.Background(), "acct"))
}

func TestAuthService_CurrentUser(t *testing.T) {
	users := new(mockUserRepo)
	user := &domain.User{ID: "user-1", Username: "nsm1", Role: domain.RoleNSM}
	users.On("GetByID", mock.Anything, "user-1").Return(user, nil)
	users.On("GetByID", mock.Anything, "gone").Return(nil, pgx.ErrNoRows)
	svc := NewAuthService(AuthDependencies{UserRepo: users})

	got, err := svc.CurrentUser(context.Background(), &domain.Identity{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = svc.CurrentUser(context.Background(), &domain.Identity{UserID: "gone"})
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

	_, err = svc.CurrentUser(context.Background(), nil)
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestAuthService_RotatingPassword(t *testing.T) {
	svc := NewAuthService(AuthDependencies{Secrets: stubSecret("D8FD9A05")})
	assert.Equal(t, "D8FD9A05", svc.RotatingPassword())
}
