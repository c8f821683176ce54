package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ProcessTimeHeader carries the handler latency in seconds.
const ProcessTimeHeader = "X-Process-Time"

// ProcessTime sets ProcessTimeHeader on every response, including failed ones.
func ProcessTime() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		c.Set(ProcessTimeHeader, strconv.FormatFloat(time.Since(start).Seconds(), 'f', -1, 64))
		return err
	}
}
