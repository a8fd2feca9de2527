package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CorrelationHeader carries the request id between the dashboard, the API and its logs.
const CorrelationHeader = "X-Correlation-ID"

const maxCorrelationLength = 64

type correlationKey struct{}

// CorrelationID reuses a well-formed id sent by the client, otherwise it issues a new one.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := acceptCorrelation(c.Get(CorrelationHeader))
		if id == "" {
			id = acceptCorrelation(c.Get(fiber.HeaderXRequestID))
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals("correlation_id", id)
		c.Set(CorrelationHeader, id)
		c.SetUserContext(context.WithValue(c.UserContext(), correlationKey{}, id))

		return c.Next()
	}
}

// acceptCorrelation drops ids that are too long or carry characters unfit for log fields.
func acceptCorrelation(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || len(value) > maxCorrelationLength {
		return ""
	}
	for _, r := range value {
		if !(r == '-' || r == '_' || r == '.' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return ""
		}
	}
	return value
}

// GetCorrelationID returns the correlation id bound to the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals("correlation_id").(string); ok {
		return id
	}
	if id, ok := c.UserContext().Value(correlationKey{}).(string); ok {
		return id
	}
	return ""
}

// ContextWithCorrelation binds the id to ctx for service-level log lines.
func ContextWithCorrelation(ctx context.Context, correlationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	correlationID = strings.TrimSpace(correlationID)
	if correlationID == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, correlationID)
}
