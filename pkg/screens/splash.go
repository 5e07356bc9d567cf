package screens

import (
	"context"

	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/resource"
	"github.com/readerapp/reader/pkg/route"
)

type SplashView struct {
	Next string `json:"next"`
}

// Splash decides where a fresh app lands: the login screen without a
// session, the configured home destination otherwise.
type Splash struct {
	nav     Navigator
	session *auth.Session
	home    route.Destination
}

func NewSplash(nav Navigator, session *auth.Session, home route.Destination) *Splash {
	return &Splash{nav: nav, session: session, home: home}
}

func (s *Splash) Destination() route.Destination {
	return route.SplashScreen
}

func (s *Splash) next() string {
	if s.session == nil || s.session.Email == "" {
		return string(route.LoginScreen)
	}
	return string(s.home)
}

func (s *Splash) Load(_ context.Context) resource.Resource[SplashView] {
	return resource.Success(SplashView{Next: s.next()})
}

func (s *Splash) Render(ctx context.Context) any {
	return s.Load(ctx)
}

// Continue leaves the splash screen.
func (s *Splash) Continue() error {
	return s.nav.Navigate(s.next())
}

func (s *Splash) Perform(_ context.Context, action string, _ []byte) error {
	if action != "continue" {
		return &UnknownActionError{s.Destination(), action}
	}
	return s.Continue()
}
