package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// NameMaxLength and EmailMaxLength mirror the column bounds of the contact table.
	NameMaxLength  = 30
	EmailMaxLength = 255
)

// Contact is a persisted contact-form submission.
// ID is assigned by the database and never changes afterwards.
type Contact struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

// CreateContact is the inbound submission payload. It is never stored as-is.
type CreateContact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

// FieldError describes one failing field of a submission.
type FieldError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

var fieldOrder = []string{"name", "email", "content"}

// Validate checks every field and reports all failures, ordered name, email, content.
// Email format is deliberately not checked; only presence and length are.
func (c CreateContact) Validate() []FieldError {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Name,
			validation.Required.Error("field required"),
			validation.RuneLength(0, NameMaxLength).Error("ensure this value has at most 30 characters"),
		),
		validation.Field(&c.Email,
			validation.Required.Error("field required"),
			validation.RuneLength(0, EmailMaxLength).Error("ensure this value has at most 255 characters"),
		),
		validation.Field(&c.Content,
			validation.Required.Error("field required"),
		),
	)
	return fieldErrors(err)
}

// Complete reports whether all three fields are non-empty.
func (c CreateContact) Complete() bool {
	return c.Name != "" && c.Email != "" && c.Content != ""
}

// ContactFields is a submission decoded with presence kept, so an absent or
// null field is distinguishable from an empty string.
type ContactFields struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Content *string `json:"content"`
}

// Missing reports every absent or null field, ordered name, email, content.
func (f ContactFields) Missing() []FieldError {
	return fieldErrors(validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.NotNil.Error("field required")),
		validation.Field(&f.Email, validation.NotNil.Error("field required")),
		validation.Field(&f.Content, validation.NotNil.Error("field required")),
	))
}

// Submission returns the payload with absent fields left empty.
func (f ContactFields) Submission() CreateContact {
	var c CreateContact
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Email != nil {
		c.Email = *f.Email
	}
	if f.Content != nil {
		c.Content = *f.Content
	}
	return c
}

func fieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return []FieldError{{Name: "body", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(errs))
	for _, name := range fieldOrder {
		if fe, ok := errs[name]; ok {
			out = append(out, FieldError{Name: name, Message: fe.Error()})
		}
	}
	return out
}

// ToContact maps the payload onto a Contact that has no ID yet.
func (c CreateContact) ToContact() *Contact {
	return &Contact{Name: c.Name, Email: c.Email, Content: c.Content}
}
