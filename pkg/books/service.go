package books

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/readerapp/reader/pkg/errcodes"
	"github.com/readerapp/reader/pkg/models"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID     string
	UserID int
}

type UpdateBookOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook assigns the book its id and stores it in a single insert.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	if book.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		book.ID = id.String()
	}

	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return errcodes.Conflict("This book is already on your shelf.")
		}
		return errors.WithStack(&PersistenceError{Op: "create", Err: err})
	}

	return nil
}

// RetrieveBook returns the book with the given id, only if it belongs to the
// given user.
func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	err := svc.db.
		NewSelect().
		Model(book).
		Where("b.id = ?", opts.ID).
		Where("b.user_id = ?", opts.UserID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(&PersistenceError{Op: "retrieve", Err: err})
	}

	return book, nil
}

// ListBooksForUser returns every book the user has saved, oldest first.
func (svc *Service) ListBooksForUser(ctx context.Context, userID int) ([]*models.Book, error) {
	books := []*models.Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Where("b.user_id = ?", userID).
		Order("b.created_at ASC", "b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(&PersistenceError{Op: "list", Err: err})
	}

	return books, nil
}

// UpdateBook writes the given columns of book. The update is scoped to the
// book's owner so a book can never move between users.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	// Update updated_at.
	now := time.Now()
	book.UpdatedAt = now
	columns := append(opts.Columns, "updated_at")

	res, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Where("b.user_id = ?", book.UserID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(&PersistenceError{Op: "update", Err: err})
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(&PersistenceError{Op: "update", Err: err})
	}
	if affected == 0 {
		return errcodes.NotFound("Book")
	}

	return nil
}
