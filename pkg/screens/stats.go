package screens

import (
	"context"

	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/readingstate"
	"github.com/readerapp/reader/pkg/resource"
	"github.com/readerapp/reader/pkg/route"
	"github.com/robinjoseph08/golib/logger"
)

type StatsView struct {
	DisplayName string `json:"display_name"`
	readingstate.Stats
}

// Stats summarizes what the reader has read.
type Stats struct {
	nav     Navigator
	session *auth.Session
	books   BookStore
}

func NewStats(nav Navigator, session *auth.Session, store BookStore) *Stats {
	return &Stats{nav: nav, session: session, books: store}
}

func (s *Stats) Destination() route.Destination {
	return route.ReaderStatsScreen
}

func (s *Stats) Load(ctx context.Context) resource.Resource[StatsView] {
	if s.session == nil {
		return resource.Error[StatsView]("Not signed in.")
	}

	list, err := s.books.ListBooksForUser(ctx, s.session.UserID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Error("failed to load stats")
		return resource.Error[StatsView]("Couldn't load your books.")
	}

	return resource.Success(StatsView{
		DisplayName: s.session.DisplayName(),
		Stats:       readingstate.Summarize(list, s.session.UserID),
	})
}

func (s *Stats) Render(ctx context.Context) any {
	return s.Load(ctx)
}

func (s *Stats) Perform(_ context.Context, action string, _ []byte) error {
	if action != "back" {
		return &UnknownActionError{s.Destination(), action}
	}
	s.nav.PopBackStack()
	return nil
}
