package navigation

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/catalog"
	"github.com/readerapp/reader/pkg/errcodes"
	"github.com/readerapp/reader/pkg/models"
	"github.com/readerapp/reader/pkg/screens"
	echoLogger "github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/logger"
)

// SignIner replaces the signed-in reader for the rest of a request and for
// the requests that follow it.
type SignIner interface {
	SignIn(c echo.Context, user *models.User) error
}

type handler struct {
	sessions *Sessions
	signIn   SignIner
}

func currentSession(c echo.Context) (*auth.Session, error) {
	session := auth.SessionFromContext(c.Request().Context())
	if session == nil {
		return nil, errcodes.Unauthorized("Authentication required")
	}
	return session, nil
}

func (h *handler) navigator(c echo.Context) (*Navigator, error) {
	session, err := currentSession(c)
	if err != nil {
		return nil, err
	}
	return h.sessions.Get(session)
}

func (h *handler) state(c echo.Context, nav *Navigator) error {
	ctx := c.Request().Context()

	current := nav.Current()
	backStack := nav.BackStack()

	resp := StateResponse{
		Route:       current.Route.String(),
		Destination: current.Route.Destination,
		Parameter:   current.Route.Parameter,
		Depth:       len(backStack),
		BackStack:   make([]string, 0, len(backStack)),
		Exited:      nav.Exited(),
	}
	for _, entry := range backStack {
		resp.BackStack = append(resp.BackStack, entry.Route.String())
	}
	if !resp.Exited && current.Screen != nil {
		resp.View = current.Screen.Render(ctx)
	}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) retrieve(c echo.Context) error {
	nav, err := h.navigator(c)
	if err != nil {
		return err
	}
	return h.state(c, nav)
}

func (h *handler) navigate(c echo.Context) error {
	ctx := c.Request().Context()

	params := NavigatePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	nav, err := h.navigator(c)
	if err != nil {
		return err
	}

	if err := nav.Navigate(params.Route); err != nil {
		return translate(ctx, err)
	}
	return h.state(c, nav)
}

func (h *handler) back(c echo.Context) error {
	nav, err := h.navigator(c)
	if err != nil {
		return err
	}
	nav.PopBackStack()
	return h.state(c, nav)
}

// reset discards the reader's history and starts again at the splash screen.
func (h *handler) reset(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	h.sessions.Forget(session.UserID)
	return h.retrieve(c)
}

func (h *handler) perform(c echo.Context) error {
	ctx := c.Request().Context()

	params := ActionPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	nav, err := h.navigator(c)
	if err != nil {
		return err
	}

	current := nav.Current()
	actor, ok := current.Screen.(screens.Actor)
	if !ok {
		return errcodes.ValidationError(string(current.Route.Destination) + " has no actions")
	}
	if err := actor.Perform(ctx, params.Action, params.Payload); err != nil {
		return translate(ctx, err)
	}

	if switcher, ok := current.Screen.(screens.SessionSwitcher); ok {
		if user := switcher.SwitchTo(); user != nil {
			return h.switchReader(c, user)
		}
	}
	return h.state(c, nav)
}

// switchReader signs user in, drops the previous reader's navigator and
// carries the new reader past the splash screen of a fresh one.
func (h *handler) switchReader(c echo.Context, user *models.User) error {
	previous, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.signIn.SignIn(c, user); err != nil {
		return errors.WithStack(err)
	}
	h.sessions.Forget(previous.UserID)

	echoLogger.FromEchoContext(c).Info("reader switched", logger.Data{"from": previous.UserID, "to": user.ID})

	nav, err := h.navigator(c)
	if err != nil {
		return err
	}
	if splash, ok := nav.Current().Screen.(*screens.Splash); ok {
		if err := splash.Continue(); err != nil {
			return translate(c.Request().Context(), err)
		}
	}
	return h.state(c, nav)
}

// translate maps navigation and screen failures onto API errors. Anything
// already an API error passes through.
func translate(ctx context.Context, err error) error {
	var (
		codeErr    *errcodes.Error
		missing    *MissingParameterError
		unknown    *screens.UnknownActionError
		payloadErr *screens.PayloadError
		fetchErr   *catalog.FetchError
		fieldErr   *catalog.MissingFieldError
	)
	switch {
	case errors.As(err, &codeErr):
		return codeErr
	case errors.As(err, &missing):
		return errcodes.MissingRouteParameter(missing.Destination.Pattern())
	case errors.As(err, &unknown):
		return errcodes.ValidationError(unknown.Error())
	case errors.As(err, &payloadErr):
		return errcodes.MalformedPayload()
	case errors.As(err, &fetchErr):
		if fetchErr.NotFound() {
			return errcodes.NotFound("Volume")
		}
		logger.FromContext(ctx).Err(err).Error("catalog fetch failed")
		return errcodes.UpstreamUnavailable("Catalog")
	case errors.As(err, &fieldErr):
		return errcodes.ValidationError(fieldErr.Error())
	case errors.Is(err, ErrExited):
		return errcodes.Conflict("Navigation has exited.")
	}
	return errors.WithStack(err)
}
