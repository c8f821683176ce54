package repository

import (
	"context"

	"contactapi/internal/model"
)

// ContactRepository defines data access for the contact table.
// Implementations run against the session bound to ctx when there is one.
type ContactRepository interface {
	// Create inserts a new row and returns it with the database-assigned ID.
	Create(ctx context.Context, c *model.Contact) (*model.Contact, error)

	// FindByID returns the contact with the given ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Contact, error)

	// List returns every contact ordered by ascending ID.
	List(ctx context.Context) ([]model.Contact, error)
}
