package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

// StaffRoles may operate the school back office.
var StaffRoles = []string{models.RoleSuperAdmin, models.RoleAdmin, models.RoleSecretary}

// AdminRoles may change school-wide settings.
var AdminRoles = []string{models.RoleSuperAdmin, models.RoleAdmin}

// RequireRole ensures that the authenticated user possesses one of the allowed roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		normalized := strings.ToLower(strings.TrimSpace(role))
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		role := normalizeRoleValue(c.Locals("user_role"))
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// CurrentRole returns the role stored by JWTProtected.
func CurrentRole(c *fiber.Ctx) string {
	return normalizeRoleValue(c.Locals("user_role"))
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(v.String()))
	default:
		if value == nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}
