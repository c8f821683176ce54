package postgres

import (
	"context"
	"database/sql"

	"contactapi/internal/database"
	"contactapi/internal/model"
	"contactapi/internal/repository"
)

// ContactPostgres is a PostgreSQL implementation of repository.ContactRepository.
type ContactPostgres struct {
	db *sql.DB
}

// NewContactPostgres creates a new ContactPostgres repository.
func NewContactPostgres(db *sql.DB) *ContactPostgres {
	return &ContactPostgres{db: db}
}

var _ repository.ContactRepository = (*ContactPostgres)(nil)

func (r *ContactPostgres) conn(ctx context.Context) database.DBTX {
	return database.Conn(ctx, r.db)
}

// Create inserts a contact row and scans back the stored record.
func (r *ContactPostgres) Create(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	const q = `
		INSERT INTO contact (name, email, content)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, content
	`
	var out model.Contact
	if err := r.conn(ctx).QueryRowContext(ctx, q, c.Name, c.Email, c.Content).
		Scan(&out.ID, &out.Name, &out.Email, &out.Content); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single contact. A missing row surfaces as sql.ErrNoRows.
func (r *ContactPostgres) FindByID(ctx context.Context, id int64) (*model.Contact, error) {
	const q = `
		SELECT id, name, email, content
		FROM contact
		WHERE id = $1
	`
	var c model.Contact
	if err := r.conn(ctx).QueryRowContext(ctx, q, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Content); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all contacts in insertion order.
func (r *ContactPostgres) List(ctx context.Context) ([]model.Contact, error) {
	const q = `
		SELECT id, name, email, content
		FROM contact
		ORDER BY id ASC
	`
	rows, err := r.conn(ctx).QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Contact, 0)
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Content); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
