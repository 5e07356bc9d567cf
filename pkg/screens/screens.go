// Package screens holds the headless controllers behind each destination of
// the reader app. A controller loads its data into a resource.Resource and
// asks its Navigator to move when the user acts.
package screens

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/readerapp/reader/pkg/books"
	"github.com/readerapp/reader/pkg/catalog"
	"github.com/readerapp/reader/pkg/models"
	"github.com/readerapp/reader/pkg/route"
	"github.com/segmentio/encoding/json"
)

// Navigator is what a controller uses to move between screens.
type Navigator interface {
	Navigate(route string) error
	PopBackStack() bool
}

// BookStore is the user document store.
type BookStore interface {
	CreateBook(ctx context.Context, book *models.Book) error
	RetrieveBook(ctx context.Context, opts books.RetrieveBookOptions) (*models.Book, error)
	ListBooksForUser(ctx context.Context, userID int) ([]*models.Book, error)
	UpdateBook(ctx context.Context, book *models.Book, opts books.UpdateBookOptions) error
}

// Accounts signs readers in and creates new accounts.
type Accounts interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, email, password string) (*models.User, error)
}

// Deps are the collaborators shared by every controller of one session.
type Deps struct {
	Books      BookStore
	Catalog    catalog.Searcher
	Accounts   Accounts
	MaxResults int
}

// Screen is a controller the navigator can show.
type Screen interface {
	Destination() route.Destination
	// Render loads the screen and returns its resource.Resource.
	Render(ctx context.Context) any
}

// SessionSwitcher is implemented by screens that can sign a different reader
// in. The caller owns replacing the session and its navigator.
type SessionSwitcher interface {
	SwitchTo() *models.User
}

// Actor is implemented by screens that accept user actions.
type Actor interface {
	Perform(ctx context.Context, action string, payload []byte) error
}

// UnknownActionError is returned by Perform for an action the screen doesn't
// support.
type UnknownActionError struct {
	Destination route.Destination
	Action      string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("%s has no %q action", e.Destination, e.Action)
}

// PayloadError is returned by Perform when an action's payload can't be
// decoded.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("malformed action payload: %v", e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

func decodePayload(payload []byte, v interface{}) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return errors.WithStack(&PayloadError{err})
	}
	return nil
}
