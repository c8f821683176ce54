package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// Recover turns a handler panic into an error for the global error handler,
// which answers with the 500 envelope. The panic value is logged.
func Recover() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			rid, _ := c.Locals(RequestIDLocalKey).(string)
			log.Error().
				Str("request_id", rid).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Interface("panic", e).
				Msg("panic_recovered")
		},
	})
}
