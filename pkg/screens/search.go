package screens

import (
	"context"
	"strings"
	"sync"

	"github.com/readerapp/reader/pkg/catalog"
	"github.com/readerapp/reader/pkg/resource"
	"github.com/readerapp/reader/pkg/route"
	"github.com/robinjoseph08/golib/logger"
)

type SearchView struct {
	Query   string           `json:"query"`
	Volumes []catalog.Volume `json:"volumes"`
}

// Search looks volumes up in the catalog. It remembers the last query so
// that returning to the screen shows the same results.
type Search struct {
	nav        Navigator
	catalog    catalog.Searcher
	maxResults int

	mu    sync.RWMutex
	query string
}

func NewSearch(nav Navigator, searcher catalog.Searcher, maxResults int) *Search {
	return &Search{nav: nav, catalog: searcher, maxResults: maxResults}
}

func (s *Search) Destination() route.Destination {
	return route.SearchScreen
}

// SetQuery replaces the query the next Load runs.
func (s *Search) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = strings.TrimSpace(query)
}

func (s *Search) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Load runs the current query. An empty query succeeds with no volumes
// without calling the catalog.
func (s *Search) Load(ctx context.Context) resource.Resource[SearchView] {
	query := s.Query()
	if query == "" {
		return resource.Success(SearchView{Volumes: []catalog.Volume{}})
	}

	volumes, err := s.catalog.Search(ctx, query, s.maxResults)
	if err != nil {
		logger.FromContext(ctx).Err(err).Error("catalog search failed", logger.Data{"query": query})
		return resource.Error[SearchView]("Couldn't reach the book catalog.")
	}
	return resource.Success(SearchView{Query: query, Volumes: volumes})
}

func (s *Search) Render(ctx context.Context) any {
	return s.Load(ctx)
}

// Select shows the details of a search result.
func (s *Search) Select(volumeID string) error {
	return s.nav.Navigate(route.Build(route.DetailScreen, volumeID))
}

func (s *Search) Perform(_ context.Context, action string, payload []byte) error {
	switch action {
	case "search":
		params := struct {
			Query string `json:"query"`
		}{}
		if err := decodePayload(payload, &params); err != nil {
			return err
		}
		s.SetQuery(params.Query)
		return nil
	case "select":
		params := struct {
			VolumeID string `json:"volume_id"`
		}{}
		if err := decodePayload(payload, &params); err != nil {
			return err
		}
		return s.Select(params.VolumeID)
	case "back":
		s.nav.PopBackStack()
		return nil
	}
	return &UnknownActionError{s.Destination(), action}
}
