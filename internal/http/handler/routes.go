package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contactapi/internal/service"
)

// RegisterRoutes attaches the contact API and operational endpoints to app.
// Cross-cutting middleware is installed by the caller.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.ContactService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/api/csrf_token", CSRFToken())
	app.Get("/contacts", ListContacts(svc))
	app.Get("/contact/:contact_id", GetContact(svc))
	app.Post("/contact", CreateContact(svc))
	app.Post("/confirm", ConfirmContact(svc))
}

// Metrics serves the Prometheus text exposition for g.
func Metrics(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
