package screens

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/readerapp/reader/pkg/books"
	"github.com/readerapp/reader/pkg/catalog"
	"github.com/readerapp/reader/pkg/errcodes"
	"github.com/readerapp/reader/pkg/models"
)

type fakeNavigator struct {
	routes []string
	pops   int
}

func (n *fakeNavigator) Navigate(route string) error {
	n.routes = append(n.routes, route)
	return nil
}

func (n *fakeNavigator) PopBackStack() bool {
	n.pops++
	return true
}

type fakeStore struct {
	books     []*models.Book
	createErr error
	listErr   error
	updateErr error
	updated   []string
}

func (s *fakeStore) CreateBook(_ context.Context, book *models.Book) error {
	if s.createErr != nil {
		return s.createErr
	}
	book.ID = "generated-id"
	book.CreatedAt = time.Now()
	s.books = append(s.books, book)
	return nil
}

func (s *fakeStore) RetrieveBook(_ context.Context, opts books.RetrieveBookOptions) (*models.Book, error) {
	for _, b := range s.books {
		if b.ID == opts.ID && b.UserID == opts.UserID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, errcodes.NotFound("Book")
}

func (s *fakeStore) ListBooksForUser(_ context.Context, _ int) ([]*models.Book, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	// Unfiltered; controllers apply the ownership filter themselves.
	return s.books, nil
}

func (s *fakeStore) UpdateBook(_ context.Context, book *models.Book, opts books.UpdateBookOptions) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = append(s.updated, opts.Columns...)
	for i, b := range s.books {
		if b.ID == book.ID {
			copied := *book
			s.books[i] = &copied
		}
	}
	return nil
}

type fakeCatalog struct {
	volumes []catalog.Volume
	err     error

	mu    sync.Mutex
	calls int
}

func (c *fakeCatalog) called() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
}

func (c *fakeCatalog) Search(_ context.Context, _ string, _ int) ([]catalog.Volume, error) {
	c.called()
	return c.volumes, c.err
}

func (c *fakeCatalog) Volume(_ context.Context, id string) (*catalog.Volume, error) {
	c.called()
	if c.err != nil {
		return nil, c.err
	}
	for i := range c.volumes {
		if c.volumes[i].ID == id {
			return &c.volumes[i], nil
		}
	}
	return nil, &catalog.FetchError{Op: "volume", StatusCode: http.StatusNotFound}
}

type fakeAccounts struct {
	registered []string
}

func (a *fakeAccounts) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	if password != "correct horse" {
		return nil, errcodes.Unauthorized("Invalid email or password")
	}
	return &models.User{ID: 1, Email: email}, nil
}

func (a *fakeAccounts) Register(_ context.Context, email, _ string) (*models.User, error) {
	for _, e := range a.registered {
		if e == email {
			return nil, errcodes.Conflict("exists")
		}
	}
	a.registered = append(a.registered, email)
	return &models.User{ID: len(a.registered), Email: email}, nil
}

var errBoom = errors.New("boom")
