package books

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/catalog"
	"github.com/readerapp/reader/pkg/errcodes"
	"github.com/readerapp/reader/pkg/readingstate"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	bookService *Service
	catalog     catalog.Searcher
}

func session(c echo.Context) (*auth.Session, error) {
	s, ok := auth.SessionFromEcho(c)
	if !ok {
		return nil, errcodes.Unauthorized("Authentication required")
	}
	return s, nil
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := session(c)
	if err != nil {
		return err
	}

	books, err := h.bookService.ListBooksForUser(ctx, s.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, ListBooksResponse{books, len(books)}))
}

func (h *handler) shelf(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := session(c)
	if err != nil {
		return err
	}

	books, err := h.bookService.ListBooksForUser(ctx, s.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	buckets := readingstate.Classify(books, s.UserID)
	return errors.WithStack(c.JSON(http.StatusOK, ShelfResponse{
		DisplayName: s.DisplayName(),
		InProgress:  buckets.InProgress,
		Added:       buckets.Added,
	}))
}

func (h *handler) stats(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := session(c)
	if err != nil {
		return err
	}

	books, err := h.bookService.ListBooksForUser(ctx, s.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, StatsResponse{
		DisplayName: s.DisplayName(),
		Stats:       readingstate.Summarize(books, s.UserID),
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := session(c)
	if err != nil {
		return err
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:     c.Param("id"),
		UserID: s.UserID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

// create saves a catalog volume to the user's shelf.
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)
	s, err := session(c)
	if err != nil {
		return err
	}

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	volume, err := h.catalog.Volume(ctx, params.GoogleBookID)
	if err != nil {
		var fetchErr *catalog.FetchError
		if errors.As(err, &fetchErr) {
			if fetchErr.NotFound() {
				return errcodes.NotFound("Volume")
			}
			log.Err(err).Error("catalog fetch failed")
			return errcodes.UpstreamUnavailable("Catalog")
		}
		return errors.WithStack(err)
	}

	book, err := catalog.ToBook(volume, s.UserID)
	if err != nil {
		return errcodes.ValidationError(err.Error())
	}

	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}
	log.Info("book saved", logger.Data{"book_id": book.ID, "google_book_id": params.GoogleBookID})

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	s, err := session(c)
	if err != nil {
		return err
	}

	// Bind params.
	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Fetch the book.
	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:     c.Param("id"),
		UserID: s.UserID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	columns, err := ApplyUpdate(book, params)
	if err != nil {
		return err
	}

	err = h.bookService.UpdateBook(ctx, book, UpdateBookOptions{Columns: columns})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}
