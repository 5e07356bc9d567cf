package screens

import (
	"context"

	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/models"
	"github.com/readerapp/reader/pkg/readingstate"
	"github.com/readerapp/reader/pkg/resource"
	"github.com/readerapp/reader/pkg/route"
	"github.com/robinjoseph08/golib/logger"
)

type HomeView struct {
	DisplayName string         `json:"display_name"`
	InProgress  []*models.Book `json:"in_progress"`
	Added       []*models.Book `json:"added"`
}

// Home shows the reader's shelf split into books being read and books merely
// added.
type Home struct {
	nav     Navigator
	session *auth.Session
	books   BookStore
}

func NewHome(nav Navigator, session *auth.Session, books BookStore) *Home {
	return &Home{nav: nav, session: session, books: books}
}

func (h *Home) Destination() route.Destination {
	return route.ReaderHomeScreen
}

func (h *Home) Load(ctx context.Context) resource.Resource[HomeView] {
	if h.session == nil {
		return resource.Error[HomeView]("Not signed in.")
	}

	list, err := h.books.ListBooksForUser(ctx, h.session.UserID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Error("failed to load shelf")
		return resource.Error[HomeView]("Couldn't load your books.")
	}

	buckets := readingstate.Classify(list, h.session.UserID)
	return resource.Success(HomeView{
		DisplayName: h.session.DisplayName(),
		InProgress:  buckets.InProgress,
		Added:       buckets.Added,
	})
}

func (h *Home) Render(ctx context.Context) any {
	return h.Load(ctx)
}

// Open shows the update screen for one of the reader's books.
func (h *Home) Open(bookID string) error {
	return h.nav.Navigate(route.Build(route.UpdateScreen, bookID))
}

func (h *Home) Search() error {
	return h.nav.Navigate(string(route.SearchScreen))
}

func (h *Home) Stats() error {
	return h.nav.Navigate(string(route.ReaderStatsScreen))
}

func (h *Home) Perform(ctx context.Context, action string, payload []byte) error {
	switch action {
	case "open":
		params := struct {
			BookID string `json:"book_id"`
		}{}
		if err := decodePayload(payload, &params); err != nil {
			return err
		}
		return h.Open(params.BookID)
	case "search":
		return h.Search()
	case "stats":
		return h.Stats()
	}
	return &UnknownActionError{h.Destination(), action}
}
