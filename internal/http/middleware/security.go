package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/utils"

	"contactapi/internal/config"
)

// CSRFHeader is where clients echo the token they received in the cookie.
const CSRFHeader = "X-CSRF-Token"

// CORS allows the configured front-end origins with any method and header.
// Credentials are only allowed for an explicit origin list.
func CORS(cfg config.CORSConfig) fiber.Handler {
	origins := "*"
	if !cfg.AllowsAny() {
		origins = strings.Join(cfg.AllowOrigins, ",")
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodHead, fiber.MethodPut, fiber.MethodDelete, fiber.MethodPatch, fiber.MethodOptions}, ","),
		AllowCredentials: origins != "*",
		ExposeHeaders:    strings.Join([]string{ProcessTimeHeader, RequestIDHeader}, ","),
	})
}

// CSRF issues a double-submit cookie on safe requests and rejects mutating
// requests whose CSRFHeader does not match it. Mutating requests that carry an
// Origin outside the CORS list are refused before the token is checked.
// Rejections surface as 403.
func CSRF(cfg config.CSRFConfig, origins config.CORSConfig) fiber.Handler {
	if !cfg.Enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	check := csrf.New(csrf.Config{
		KeyLookup:      "header:" + CSRFHeader,
		CookieName:     cfg.CookieName,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: cfg.CookieSameSite,
		Expiration:     time.Duration(cfg.ExpirationSec) * time.Second,
		KeyGenerator:   utils.UUIDv4,
	})
	if origins.AllowsAny() {
		return check
	}

	trusted := make(map[string]struct{}, len(origins.AllowOrigins))
	for _, o := range origins.AllowOrigins {
		trusted[strings.TrimSuffix(strings.ToLower(o), "/")] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if origin := c.Get(fiber.HeaderOrigin); origin != "" && !safeMethod(c.Method()) {
			if _, ok := trusted[strings.ToLower(origin)]; !ok {
				return fiber.ErrForbidden
			}
		}
		return check(c)
	}
}

func safeMethod(m string) bool {
	switch m {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions, fiber.MethodTrace:
		return true
	}
	return false
}
