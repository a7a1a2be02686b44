package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/primemotors/inventory-service/internal/domain"
	apperrors "github.com/primemotors/inventory-service/pkg/util"
)

// DisclosureRoles may read the current edit password.
var DisclosureRoles = []domain.Role{domain.RoleNSM, domain.RoleAccounting}

// RequireRole allows the request only when the verified identity holds one of allowed.
// It must run after Authenticate; a missing identity is treated as forbidden.
func RequireRole(allowed ...domain.Role) Guard {
	allowed = append([]domain.Role(nil), allowed...)

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok || !identity.HasRole(allowed...) {
			return apperrors.NewForbidden("forbidden")
		}
		return nil
	}
}
