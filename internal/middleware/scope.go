package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

const scopeLocal = "scope_office_id"

// OfficeScope resolves the office a request is limited to. Secretaries are pinned to the
// office of their token; other roles may narrow a request with ?office_id=.
func OfficeScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentRole(c) == models.RoleSecretary {
			officeID, ok := c.Locals("office_id").(uint)
			if !ok || officeID == 0 {
				return utils.SendError(c, fiber.StatusForbidden, "secretary account is not bound to an office")
			}
			c.Locals(scopeLocal, officeID)
			return c.Next()
		}

		if raw := strings.TrimSpace(c.Query("office_id")); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || parsed == 0 {
				return utils.SendError(c, fiber.StatusBadRequest, "invalid office_id")
			}
			c.Locals(scopeLocal, uint(parsed))
		}

		return c.Next()
	}
}

// ScopedOffice returns the office resolved by OfficeScope, or nil for every office.
func ScopedOffice(c *fiber.Ctx) *uint {
	officeID, ok := c.Locals(scopeLocal).(uint)
	if !ok || officeID == 0 {
		return nil
	}
	return &officeID
}

// TokenOffice returns the office claim of the token, if any.
func TokenOffice(c *fiber.Ctx) *uint {
	officeID, ok := c.Locals("office_id").(uint)
	if !ok || officeID == 0 {
		return nil
	}
	return &officeID
}
