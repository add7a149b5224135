package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kaa-web/internal/api"
)

const traceIDHeader = "X-Trace-Id"

// Tracing tags the request with a trace ID, honoring one supplied by the
// caller. The ID is stored under the key the API client reads from the request
// context, so outbound calls to the listing API carry the same ID and upstream
// logs correlate with ours.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Locals(api.TraceIDKey, traceID)
		c.Set(traceIDHeader, traceID)
		return c.Next()
	}
}

// GetTraceID returns the trace ID from context.
func GetTraceID(c *fiber.Ctx) string {
	if id, ok := c.Locals(api.TraceIDKey).(string); ok {
		return id
	}
	return ""
}
