package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/primemotors/inventory-service/internal/domain"
	apperrors "github.com/primemotors/inventory-service/pkg/util"
)

const identityKey = "auth_identity"

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// AuthMiddleware validates bearer tokens and attaches the verified identity.
type AuthMiddleware struct {
	tokens TokenVerifier
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Authenticate is the guard form; it does not call the next handler.
// Raw header and token values are never logged.
func (m *AuthMiddleware) Authenticate(c *fiber.Ctx) error {
	token := bearerToken(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		m.logger.Warn("authentication failed",
			zap.String("kind", apperrors.CodeUnauthenticated),
			zap.String("path", c.Path()))
		return apperrors.NewUnauthenticated("authentication token is required")
	}

	identity, err := m.tokens.Verify(token)
	if err != nil {
		m.logger.Warn("authentication failed",
			zap.String("kind", apperrors.CodeInvalidOrExpiredToken),
			zap.String("path", c.Path()))
		return apperrors.NewInvalidOrExpiredToken(err)
	}

	c.Locals(identityKey, identity)
	return nil
}

// Handle enforces authentication for protected route groups.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	return Middleware(m.Authenticate)(c)
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok && identity != nil
}

// bearerToken returns the credential following the Bearer scheme, or "".
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
