package navigation

import (
	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/route"
	"github.com/readerapp/reader/pkg/screens"
)

// NewForSession returns a started navigator with every destination of the
// reader app registered for the given session.
func NewForSession(registry *route.Registry, session *auth.Session, deps screens.Deps) (*Navigator, error) {
	n := New(registry)
	home := registry.Default()

	n.Register(route.SplashScreen, func(*string) (screens.Screen, error) {
		return screens.NewSplash(n, session, home), nil
	})
	n.Register(route.LoginScreen, func(*string) (screens.Screen, error) {
		return screens.NewLogin(n, deps.Accounts, session, home), nil
	})
	n.Register(route.CreateAccountScreen, func(*string) (screens.Screen, error) {
		return screens.NewCreateAccount(n, deps.Accounts, session, home), nil
	})
	n.Register(route.ReaderHomeScreen, func(*string) (screens.Screen, error) {
		return screens.NewHome(n, session, deps.Books), nil
	})
	n.Register(route.SearchScreen, func(*string) (screens.Screen, error) {
		return screens.NewSearch(n, deps.Catalog, deps.MaxResults), nil
	})
	n.Register(route.DetailScreen, func(bookID *string) (screens.Screen, error) {
		return screens.NewDetails(n, session, deps.Catalog, deps.Books, *bookID), nil
	})
	n.Register(route.UpdateScreen, func(bookItemID *string) (screens.Screen, error) {
		return screens.NewUpdate(n, session, deps.Books, *bookItemID), nil
	})
	n.Register(route.ReaderStatsScreen, func(*string) (screens.Screen, error) {
		return screens.NewStats(n, session, deps.Books), nil
	})

	if err := n.Start(); err != nil {
		return nil, err
	}
	return n, nil
}
