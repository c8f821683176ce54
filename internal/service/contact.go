package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"contactapi/internal/database"
	"contactapi/internal/model"
	"contactapi/internal/repository"
	"contactapi/internal/storage"
)

var (
	ErrNotFound          = errors.New("contact not found")
	ErrInvalidSubmission = errors.New("submission has empty fields")
)

// ValidationError carries every failing field of a rejected submission.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// ContactService defines the use cases behind the contact form.
type ContactService interface {
	// List returns every contact in ascending ID order.
	List(ctx context.Context) ([]model.Contact, error)

	// Get returns a single contact, or ErrNotFound.
	Get(ctx context.Context, id int64) (*model.Contact, error)

	// Create validates and stores a submission. Invalid input yields *ValidationError.
	// When an archive is configured the stored record is also written there
	// before the session commits.
	Create(ctx context.Context, in model.CreateContact) (*model.Contact, error)

	// Confirm echoes a complete submission back without storing it,
	// or returns ErrInvalidSubmission.
	Confirm(in model.CreateContact) (*model.CreateContact, error)
}

type contactService struct {
	sessions database.UnitOfWork
	repo     repository.ContactRepository
	archive  storage.Storage
	tracer   trace.Tracer
}

// NewContactService constructs a ContactService. archive may be nil.
func NewContactService(sessions database.UnitOfWork, repo repository.ContactRepository, archive storage.Storage) ContactService {
	return &contactService{
		sessions: sessions,
		repo:     repo,
		archive:  archive,
		tracer:   otel.Tracer("contactapi/internal/service"),
	}
}

// ArchiveKey is the object key a contact is archived under.
func ArchiveKey(id int64) string {
	return "contacts/" + strconv.FormatInt(id, 10) + ".json"
}

func (s *contactService) List(ctx context.Context) ([]model.Contact, error) {
	ctx, span := s.tracer.Start(ctx, "ContactService.List")
	defer span.End()

	var items []model.Contact
	err := s.sessions.WithSession(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		fail(span, err)
		return nil, err
	}
	return items, nil
}

func (s *contactService) Get(ctx context.Context, id int64) (*model.Contact, error) {
	ctx, span := s.tracer.Start(ctx, "ContactService.Get")
	defer span.End()

	var c *model.Contact
	err := s.sessions.WithSession(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		fail(span, err)
		return nil, err
	}
	return c, nil
}

func (s *contactService) Create(ctx context.Context, in model.CreateContact) (*model.Contact, error) {
	ctx, span := s.tracer.Start(ctx, "ContactService.Create")
	defer span.End()

	if fields := in.Validate(); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var (
		created     *model.Contact
		archivedKey string
	)
	err := s.sessions.WithSession(ctx, func(ctx context.Context) error {
		c, err := s.repo.Create(ctx, in.ToContact())
		if err != nil {
			return fmt.Errorf("insert contact: %w", err)
		}
		if s.archive != nil {
			if err := s.archiveContact(ctx, c); err != nil {
				return fmt.Errorf("archive contact: %w", err)
			}
			archivedKey = ArchiveKey(c.ID)
		}
		created = c
		return nil
	})
	if err != nil {
		// The row was rolled back; drop the archived copy with it.
		if archivedKey != "" {
			if delErr := s.archive.Delete(ctx, archivedKey); delErr != nil {
				err = fmt.Errorf("%w; archive cleanup failed: %v", err, delErr)
			}
		}
		fail(span, err)
		return nil, err
	}
	return created, nil
}

func (s *contactService) Confirm(in model.CreateContact) (*model.CreateContact, error) {
	if !in.Complete() {
		return nil, ErrInvalidSubmission
	}
	return &in, nil
}

func (s *contactService) archiveContact(ctx context.Context, c *model.Contact) error {
	body, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = s.archive.Put(ctx, ArchiveKey(c.ID), bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
	})
	return err
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
