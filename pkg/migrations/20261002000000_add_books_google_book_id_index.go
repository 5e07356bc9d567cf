package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		// A user may save the same catalog volume only once.
		_, err := db.Exec(`CREATE UNIQUE INDEX ux_books_user_id_google_book_id ON books (user_id, google_book_id) WHERE google_book_id IS NOT NULL`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("DROP INDEX IF EXISTS ux_books_user_id_google_book_id")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
