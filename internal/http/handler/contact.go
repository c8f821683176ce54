package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"contactapi/internal/model"
	"contactapi/internal/service"
)

// CSRFTokenIssued is the body of GET /api/csrf_token; the token itself travels in a cookie.
const CSRFTokenIssued = "csrf token issued"

var invalidBody = []model.FieldError{{Name: "body", Message: "invalid JSON body"}}

// CSRFToken godoc
// @Summary Issue an anti-forgery token
// @Description The token is set as a cookie by the CSRF middleware; echo it in X-CSRF-Token on POST requests.
// @Tags token
// @Produce json
// @Success 200 {string} string
// @Router /api/csrf_token [get]
func CSRFToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(CSRFTokenIssued)
	}
}

// ListContacts godoc
// @Summary List contacts
// @Tags contacts
// @Produce json
// @Success 200 {array} model.Contact
// @Failure 500 {object} errorPayload
// @Router /contacts [get]
func ListContacts(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if items == nil {
			items = []model.Contact{}
		}
		return c.JSON(items)
	}
}

// GetContact godoc
// @Summary Get a contact by id
// @Tags contacts
// @Produce json
// @Param contact_id path int true "Contact ID"
// @Success 200 {object} model.Contact
// @Failure 404 {object} errorPayload
// @Failure 422 {object} validationPayload
// @Router /contact/{contact_id} [get]
func GetContact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("contact_id"), 10, 64)
		if err != nil {
			return writeValidationError(c, []model.FieldError{{Name: "contact_id", Message: "value is not a valid integer"}})
		}

		contact, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "Contact not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(contact)
	}
}

// CreateContact godoc
// @Summary Submit a contact form
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body model.CreateContact true "Submission"
// @Success 201 {object} model.Contact
// @Failure 422 {object} validationPayload
// @Failure 500 {object} errorPayload
// @Router /contact [post]
func CreateContact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.CreateContact
		if err := c.BodyParser(&req); err != nil {
			return writeValidationError(c, invalidBody)
		}

		contact, err := svc.Create(c.UserContext(), req)
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				return writeValidationError(c, verr.Fields)
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(contact)
	}
}

// ConfirmContact godoc
// @Summary Review a submission before sending it
// @Description Echoes the payload back without storing it. An absent or null field yields 422, an empty one 404.
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body model.CreateContact true "Submission"
// @Success 200 {object} model.CreateContact
// @Failure 404 {object} errorPayload
// @Failure 422 {object} validationPayload
// @Router /confirm [post]
func ConfirmContact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.ContactFields
		if err := c.BodyParser(&req); err != nil {
			return writeValidationError(c, invalidBody)
		}
		if missing := req.Missing(); len(missing) > 0 {
			return writeValidationError(c, missing)
		}

		confirmed, err := svc.Confirm(req.Submission())
		if err != nil {
			if errors.Is(err, service.ErrInvalidSubmission) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "submitted data is invalid")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(confirmed)
	}
}
