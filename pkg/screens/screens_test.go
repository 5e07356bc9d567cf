package screens

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/books"
	"github.com/readerapp/reader/pkg/catalog"
	"github.com/readerapp/reader/pkg/models"
	"github.com/readerapp/reader/pkg/resource"
	"github.com/readerapp/reader/pkg/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var session = &auth.Session{UserID: 1, Email: "email@gmail.com"}

func strPtr(s string) *string {
	return &s
}

func TestSplash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session *auth.Session
		next    string
	}{
		{"signed out", nil, "LoginScreen"},
		{"no email", &auth.Session{UserID: 1}, "LoginScreen"},
		{"signed in", session, "ReaderHomeScreen"},
		{"custom home", session, "ReaderStatsScreen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			nav := &fakeNavigator{}
			home := route.ReaderHomeScreen
			if tt.name == "custom home" {
				home = route.ReaderStatsScreen
			}
			s := NewSplash(nav, tt.session, home)

			view, ok := s.Load(context.Background()).Data()
			require.True(t, ok)
			assert.Equal(t, tt.next, view.Next)

			require.NoError(t, s.Perform(context.Background(), "continue", nil))
			assert.Equal(t, []string{tt.next}, nav.routes)
		})
	}
}

func TestAccountForm(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	nav := &fakeNavigator{}
	accounts := &fakeAccounts{}

	login := NewLogin(nav, accounts, session, route.ReaderHomeScreen)
	assert.Equal(t, route.LoginScreen, login.Destination())
	view, _ := login.Load(ctx).Data()
	assert.Equal(t, "CreateAccountScreen", view.Alternate)

	_, err := login.Submit(ctx, Credentials{Email: "a@b.c", Password: "wrong"})
	require.Error(t, err)
	assert.Empty(t, nav.routes)

	require.NoError(t, login.Perform(ctx, "submit", []byte(`{"email":"email@gmail.com","password":"correct horse"}`)))
	assert.Equal(t, []string{"ReaderHomeScreen"}, nav.routes)
	assert.Nil(t, login.SwitchTo())

	create := NewCreateAccount(nav, accounts, session, route.ReaderHomeScreen)
	_, err = create.Submit(ctx, Credentials{Email: "new@b.c", Password: "whatever1"})
	require.NoError(t, err)
	_, err = create.Submit(ctx, Credentials{Email: "new@b.c", Password: "whatever1"})
	require.Error(t, err)
	assert.Equal(t, []string{"new@b.c"}, accounts.registered)

	require.NoError(t, create.Perform(ctx, "switch", nil))
	assert.Equal(t, "LoginScreen", nav.routes[len(nav.routes)-1])

	var unknown *UnknownActionError
	require.ErrorAs(t, create.Perform(ctx, "dance", nil), &unknown)
}

func TestAccountForm_OtherReader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		session *auth.Session
	}{
		{"different reader signed in", &auth.Session{UserID: 2, Email: "alice@example.com"}},
		{"no session", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			nav := &fakeNavigator{}
			login := NewLogin(nav, &fakeAccounts{}, tt.session, route.ReaderHomeScreen)

			user, err := login.Submit(ctx, Credentials{Email: "bob@example.com", Password: "correct horse"})
			require.NoError(t, err)
			assert.Equal(t, 1, user.ID)

			assert.Empty(t, nav.routes)
			switched := login.SwitchTo()
			require.NotNil(t, switched)
			assert.Equal(t, "bob@example.com", switched.Email)
		})
	}
}

func TestHome_Load(t *testing.T) {
	t.Parallel()

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{books: []*models.Book{
		{ID: "b0", UserID: 1},
		{ID: "b1", UserID: 1, StartedReading: &t1},
		{ID: "b2", UserID: 2, StartedReading: &t1},
		{ID: "b3", UserID: 1, StartedReading: &t1, FinishedReading: &t1},
	}}
	home := NewHome(&fakeNavigator{}, session, store)

	res := home.Load(context.Background())
	view, ok := res.Data()
	require.True(t, ok)
	assert.Equal(t, "email", view.DisplayName)
	require.Len(t, view.Added, 1)
	require.Len(t, view.InProgress, 1)
	assert.Equal(t, "b0", view.Added[0].ID)
	assert.Equal(t, "b1", view.InProgress[0].ID)
}

func TestHome_LoadFailure(t *testing.T) {
	t.Parallel()

	home := NewHome(&fakeNavigator{}, session, &fakeStore{listErr: errBoom})
	res := home.Load(context.Background())
	assert.True(t, res.IsError())
	assert.NotEmpty(t, res.Message())

	res = NewHome(&fakeNavigator{}, nil, &fakeStore{}).Load(context.Background())
	assert.True(t, res.IsError())
}

func TestHome_Actions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	nav := &fakeNavigator{}
	home := NewHome(nav, session, &fakeStore{})

	require.NoError(t, home.Perform(ctx, "open", []byte(`{"book_id":"abc123"}`)))
	require.NoError(t, home.Perform(ctx, "search", nil))
	require.NoError(t, home.Perform(ctx, "stats", nil))
	assert.Equal(t, []string{"UpdateScreen/abc123", "SearchScreen", "ReaderStatsScreen"}, nav.routes)
}

func TestSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	nav := &fakeNavigator{}
	cat := &fakeCatalog{volumes: []catalog.Volume{{ID: "v1", Title: "Dune"}}}
	s := NewSearch(nav, cat, 20)

	res := s.Load(ctx)
	view, ok := res.Data()
	require.True(t, ok)
	assert.Empty(t, view.Volumes)
	assert.Zero(t, cat.calls)

	require.NoError(t, s.Perform(ctx, "search", []byte(`{"query":"  dune "}`)))
	assert.Equal(t, "dune", s.Query())
	view, ok = s.Load(ctx).Data()
	require.True(t, ok)
	require.Len(t, view.Volumes, 1)

	require.NoError(t, s.Perform(ctx, "select", []byte(`{"volume_id":"v1"}`)))
	assert.Equal(t, []string{"DetailScreen/v1"}, nav.routes)

	cat.err = &catalog.FetchError{Op: "search", StatusCode: 500}
	res = s.Load(ctx)
	assert.True(t, res.IsError())
	assert.Equal(t, "Couldn't reach the book catalog.", res.Message())
}

func TestSearch_ConcurrentQueryAndRender(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cat := &fakeCatalog{volumes: []catalog.Volume{{ID: "v1", Title: "Dune"}}}
	s := NewSearch(&fakeNavigator{}, cat, 20)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Perform(ctx, "search", []byte(`{"query":"dune"}`)))
		}()
		go func() {
			defer wg.Done()
			res, ok := s.Render(ctx).(resource.Resource[SearchView])
			assert.True(t, ok)
			assert.False(t, res.IsError())
		}()
	}
	wg.Wait()

	assert.Equal(t, "dune", s.Query())
}

func TestDetails_Save(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newCatalog := func() *fakeCatalog {
		return &fakeCatalog{volumes: []catalog.Volume{{ID: "v1", Title: "Dune", Authors: []string{"Frank Herbert"}}}}
	}

	t.Run("success pops once stored", func(t *testing.T) {
		t.Parallel()
		nav := &fakeNavigator{}
		store := &fakeStore{}
		d := NewDetails(nav, session, newCatalog(), store, "v1")

		vol, ok := d.Load(ctx).Data()
		require.True(t, ok)
		assert.Equal(t, "Dune", vol.Title)

		book, err := d.Save(ctx)
		require.NoError(t, err)
		assert.Equal(t, "generated-id", book.ID)
		assert.Equal(t, 1, book.UserID)
		assert.Equal(t, "Frank Herbert", *book.Authors)
		assert.Equal(t, 1, nav.pops)
	})

	t.Run("persistence failure stays", func(t *testing.T) {
		t.Parallel()
		nav := &fakeNavigator{}
		store := &fakeStore{createErr: &books.PersistenceError{Op: "create", Err: errBoom}}
		d := NewDetails(nav, session, newCatalog(), store, "v1")

		_, err := d.Save(ctx)
		var persistErr *books.PersistenceError
		require.ErrorAs(t, err, &persistErr)
		assert.Zero(t, nav.pops)
	})

	t.Run("unknown volume stays", func(t *testing.T) {
		t.Parallel()
		nav := &fakeNavigator{}
		d := NewDetails(nav, session, newCatalog(), &fakeStore{}, "missing")

		assert.True(t, d.Load(ctx).IsError())
		require.Error(t, d.Perform(ctx, "save", nil))
		assert.Zero(t, nav.pops)
	})

	t.Run("cancel pops", func(t *testing.T) {
		t.Parallel()
		nav := &fakeNavigator{}
		d := NewDetails(nav, session, newCatalog(), &fakeStore{}, "v1")
		require.NoError(t, d.Perform(ctx, "cancel", nil))
		assert.Equal(t, 1, nav.pops)
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	newUpdate := func(store *fakeStore, nav *fakeNavigator) *Update {
		u := NewUpdate(nav, session, store, "b1")
		u.now = func() time.Time { return fixed }
		return u
	}

	t.Run("load scoped to owner", func(t *testing.T) {
		t.Parallel()
		store := &fakeStore{books: []*models.Book{{ID: "b1", UserID: 2}}}
		res := newUpdate(store, &fakeNavigator{}).Load(ctx)
		assert.True(t, res.IsError())
	})

	t.Run("start then finish", func(t *testing.T) {
		t.Parallel()
		nav := &fakeNavigator{}
		store := &fakeStore{books: []*models.Book{{ID: "b1", UserID: 1, Title: strPtr("Dune")}}}
		u := newUpdate(store, nav)

		book, err := u.StartReading(ctx)
		require.NoError(t, err)
		assert.True(t, fixed.Equal(*book.StartedReading))

		require.NoError(t, u.Perform(ctx, "finish", nil))
		loaded, ok := u.Load(ctx).Data()
		require.True(t, ok)
		assert.NotNil(t, loaded.FinishedReading)
		assert.Zero(t, nav.pops)
		assert.Equal(t, []string{"started_reading", "finished_reading"}, store.updated)
	})

	t.Run("save pops on success", func(t *testing.T) {
		t.Parallel()
		nav := &fakeNavigator{}
		store := &fakeStore{books: []*models.Book{{ID: "b1", UserID: 1}}}
		u := newUpdate(store, nav)

		require.NoError(t, u.Perform(ctx, "save", []byte(`{"rating":4,"notes":"good"}`)))
		assert.Equal(t, 1, nav.pops)
		assert.Equal(t, 4.0, store.books[0].Rating)
		assert.Equal(t, "good", store.books[0].Notes)
	})

	t.Run("failed save stays", func(t *testing.T) {
		t.Parallel()
		nav := &fakeNavigator{}
		store := &fakeStore{books: []*models.Book{{ID: "b1", UserID: 1}}, updateErr: errBoom}
		u := newUpdate(store, nav)

		rating := 2.0
		_, err := u.Save(ctx, books.UpdateBookPayload{Rating: &rating})
		require.Error(t, err)
		assert.Zero(t, nav.pops)

		_, err = u.Save(ctx, books.UpdateBookPayload{Rating: func() *float64 { r := 9.0; return &r }()})
		require.Error(t, err)
		assert.Zero(t, nav.pops)
	})

	t.Run("cancel pops", func(t *testing.T) {
		t.Parallel()
		nav := &fakeNavigator{}
		u := newUpdate(&fakeStore{}, nav)
		require.NoError(t, u.Perform(ctx, "cancel", nil))
		assert.Equal(t, 1, nav.pops)
	})
}

func TestStats(t *testing.T) {
	t.Parallel()

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{books: []*models.Book{
		{ID: "b0", UserID: 1},
		{ID: "b1", UserID: 1, StartedReading: &t1},
		{ID: "b2", UserID: 1, StartedReading: &t1, FinishedReading: &t1},
		{ID: "b3", UserID: 9, StartedReading: &t1, FinishedReading: &t1},
	}}
	nav := &fakeNavigator{}
	s := NewStats(nav, session, store)

	res := s.Load(context.Background())
	assert.Equal(t, resource.StatusSuccess, res.Status())
	view, _ := res.Data()
	assert.Equal(t, "email", view.DisplayName)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 1, view.Finished)
	assert.Equal(t, 1, view.Reading)
	assert.Equal(t, 1, view.Unread)
	require.Len(t, view.FinishedBooks, 1)
	assert.Equal(t, "b2", view.FinishedBooks[0].ID)

	require.NoError(t, s.Perform(context.Background(), "back", nil))
	assert.Equal(t, 1, nav.pops)
}

func TestPerform_MalformedPayload(t *testing.T) {
	t.Parallel()

	home := NewHome(&fakeNavigator{}, session, &fakeStore{})
	err := home.Perform(context.Background(), "open", []byte(`{"book_id":`))
	var payloadErr *PayloadError
	require.ErrorAs(t, err, &payloadErr)
}
