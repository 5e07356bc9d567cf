package screens

import (
	"context"

	"github.com/pkg/errors"
	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/catalog"
	"github.com/readerapp/reader/pkg/models"
	"github.com/readerapp/reader/pkg/resource"
	"github.com/readerapp/reader/pkg/route"
	"github.com/robinjoseph08/golib/logger"
)

// Details shows one catalog volume and lets the reader save it to their
// shelf.
type Details struct {
	nav      Navigator
	session  *auth.Session
	catalog  catalog.Searcher
	books    BookStore
	volumeID string
}

func NewDetails(nav Navigator, session *auth.Session, searcher catalog.Searcher, books BookStore, volumeID string) *Details {
	return &Details{
		nav:      nav,
		session:  session,
		catalog:  searcher,
		books:    books,
		volumeID: volumeID,
	}
}

func (d *Details) Destination() route.Destination {
	return route.DetailScreen
}

func (d *Details) Load(ctx context.Context) resource.Resource[*catalog.Volume] {
	volume, err := d.catalog.Volume(ctx, d.volumeID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Error("catalog volume lookup failed", logger.Data{"volume_id": d.volumeID})
		return resource.Error[*catalog.Volume]("Couldn't load this book.")
	}
	return resource.Success(volume)
}

func (d *Details) Render(ctx context.Context) any {
	return d.Load(ctx)
}

// Save maps the volume to a book, persists it, and only then leaves the
// screen. On any failure the screen stays put.
func (d *Details) Save(ctx context.Context) (*models.Book, error) {
	log := logger.FromContext(ctx)

	if d.session == nil {
		return nil, errors.New("saving a book requires a session")
	}

	volume, err := d.catalog.Volume(ctx, d.volumeID)
	if err != nil {
		log.Err(err).Error("catalog volume lookup failed", logger.Data{"volume_id": d.volumeID})
		return nil, err
	}

	book, err := catalog.ToBook(volume, d.session.UserID)
	if err != nil {
		log.Err(err).Warn("volume can't be saved", logger.Data{"volume_id": d.volumeID})
		return nil, err
	}

	if err := d.books.CreateBook(ctx, book); err != nil {
		log.Err(err).Error("failed to save book", logger.Data{"volume_id": d.volumeID})
		return nil, err
	}

	d.nav.PopBackStack()
	return book, nil
}

// Cancel leaves the screen without saving.
func (d *Details) Cancel() {
	d.nav.PopBackStack()
}

func (d *Details) Perform(ctx context.Context, action string, _ []byte) error {
	switch action {
	case "save":
		_, err := d.Save(ctx)
		return err
	case "cancel":
		d.Cancel()
		return nil
	}
	return &UnknownActionError{d.Destination(), action}
}
