package navigation

import (
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/route"
	"github.com/readerapp/reader/pkg/screens"
	"github.com/robinjoseph08/golib/logger"
)

// Sessions holds one navigator per signed-in user. Navigators are created on
// first use and replaced once they have exited.
type Sessions struct {
	registry   *route.Registry
	deps       screens.Deps
	log        logger.Logger
	navigators *xsync.MapOf[int, *Navigator]
}

func NewSessions(registry *route.Registry, deps screens.Deps, log logger.Logger) *Sessions {
	return &Sessions{
		registry:   registry,
		deps:       deps,
		log:        log,
		navigators: xsync.NewMapOf[int, *Navigator](),
	}
}

// Get returns the user's live navigator.
func (s *Sessions) Get(session *auth.Session) (*Navigator, error) {
	var err error
	nav, _ := s.navigators.Compute(session.UserID, func(old *Navigator, loaded bool) (*Navigator, bool) {
		if loaded && !old.Exited() {
			return old, false
		}
		var fresh *Navigator
		fresh, err = s.newNavigator(session)
		if err != nil {
			return nil, true
		}
		return fresh, false
	})
	if err != nil {
		return nil, err
	}
	return nav, nil
}

// Forget drops the user's navigator, so the next Get starts over at the
// splash screen.
func (s *Sessions) Forget(userID int) {
	s.navigators.Delete(userID)
}

func (s *Sessions) newNavigator(session *auth.Session) (*Navigator, error) {
	nav, err := NewForSession(s.registry, session, s.deps)
	if err != nil {
		return nil, err
	}
	userID := session.UserID
	nav.OnTransition(func(from Entry, to *Entry) {
		data := logger.Data{"user_id": userID, "from": from.Route.String()}
		if to == nil {
			s.log.Debug("navigator exited", data)
			return
		}
		data["to"] = to.Route.String()
		s.log.Debug("navigated", data)
	})
	s.log.Debug("navigator started", logger.Data{"user_id": userID})
	return nav, nil
}
