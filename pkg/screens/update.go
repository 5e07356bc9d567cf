package screens

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/books"
	"github.com/readerapp/reader/pkg/models"
	"github.com/readerapp/reader/pkg/resource"
	"github.com/readerapp/reader/pkg/route"
	"github.com/robinjoseph08/golib/logger"
)

// Update edits the reading progress, rating and notes of a saved book.
type Update struct {
	nav     Navigator
	session *auth.Session
	books   BookStore
	bookID  string
	now     func() time.Time
}

func NewUpdate(nav Navigator, session *auth.Session, store BookStore, bookID string) *Update {
	return &Update{
		nav:     nav,
		session: session,
		books:   store,
		bookID:  bookID,
		now:     time.Now,
	}
}

func (u *Update) Destination() route.Destination {
	return route.UpdateScreen
}

func (u *Update) retrieve(ctx context.Context) (*models.Book, error) {
	if u.session == nil {
		return nil, errors.New("updating a book requires a session")
	}
	return u.books.RetrieveBook(ctx, books.RetrieveBookOptions{ID: u.bookID, UserID: u.session.UserID})
}

func (u *Update) Load(ctx context.Context) resource.Resource[*models.Book] {
	book, err := u.retrieve(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Error("failed to load book", logger.Data{"book_id": u.bookID})
		return resource.Error[*models.Book]("Couldn't load this book.")
	}
	return resource.Success(book)
}

func (u *Update) Render(ctx context.Context) any {
	return u.Load(ctx)
}

func (u *Update) apply(ctx context.Context, params books.UpdateBookPayload) (*models.Book, error) {
	log := logger.FromContext(ctx)

	book, err := u.retrieve(ctx)
	if err != nil {
		log.Err(err).Error("failed to load book", logger.Data{"book_id": u.bookID})
		return nil, err
	}

	columns, err := books.ApplyUpdate(book, params)
	if err != nil {
		return nil, err
	}

	err = u.books.UpdateBook(ctx, book, books.UpdateBookOptions{Columns: columns})
	if err != nil {
		log.Err(err).Error("failed to update book", logger.Data{"book_id": u.bookID})
		return nil, err
	}
	return book, nil
}

// Save persists the changes and leaves the screen once they're stored.
func (u *Update) Save(ctx context.Context, params books.UpdateBookPayload) (*models.Book, error) {
	book, err := u.apply(ctx, params)
	if err != nil {
		return nil, err
	}
	u.nav.PopBackStack()
	return book, nil
}

// StartReading stamps the book as started now. The screen stays open.
func (u *Update) StartReading(ctx context.Context) (*models.Book, error) {
	now := u.now()
	return u.apply(ctx, books.UpdateBookPayload{StartedReading: &now})
}

// FinishReading stamps the book as finished now. The screen stays open.
func (u *Update) FinishReading(ctx context.Context) (*models.Book, error) {
	now := u.now()
	return u.apply(ctx, books.UpdateBookPayload{FinishedReading: &now})
}

// Cancel leaves the screen, discarding unsaved edits.
func (u *Update) Cancel() {
	u.nav.PopBackStack()
}

func (u *Update) Perform(ctx context.Context, action string, payload []byte) error {
	var err error
	switch action {
	case "save":
		params := books.UpdateBookPayload{}
		if err := decodePayload(payload, &params); err != nil {
			return err
		}
		_, err = u.Save(ctx, params)
	case "start":
		_, err = u.StartReading(ctx)
	case "finish":
		_, err = u.FinishReading(ctx)
	case "cancel":
		u.Cancel()
	default:
		return &UnknownActionError{u.Destination(), action}
	}
	return err
}
