package screens

import (
	"context"
	"sync"

	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/models"
	"github.com/readerapp/reader/pkg/resource"
	"github.com/readerapp/reader/pkg/route"
	"github.com/robinjoseph08/golib/logger"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FormView describes the account form a client shows.
type FormView struct {
	Title       string `json:"title"`
	SubmitLabel string `json:"submit_label"`
	Alternate   string `json:"alternate"`
}

// AccountForm backs both the login and the create-account screens. They
// differ only in how submitted credentials are used.
type AccountForm struct {
	nav         Navigator
	accounts    Accounts
	session     *auth.Session
	home        route.Destination
	destination route.Destination

	mu       sync.Mutex
	switchTo *models.User
}

func NewLogin(nav Navigator, accounts Accounts, session *auth.Session, home route.Destination) *AccountForm {
	return &AccountForm{nav: nav, accounts: accounts, session: session, home: home, destination: route.LoginScreen}
}

func NewCreateAccount(nav Navigator, accounts Accounts, session *auth.Session, home route.Destination) *AccountForm {
	return &AccountForm{nav: nav, accounts: accounts, session: session, home: home, destination: route.CreateAccountScreen}
}

func (f *AccountForm) Destination() route.Destination {
	return f.destination
}

func (f *AccountForm) view() FormView {
	if f.destination == route.CreateAccountScreen {
		return FormView{
			Title:       "Create Account",
			SubmitLabel: "Create Account",
			Alternate:   string(route.LoginScreen),
		}
	}
	return FormView{
		Title:       "Login",
		SubmitLabel: "Login",
		Alternate:   string(route.CreateAccountScreen),
	}
}

func (f *AccountForm) Load(_ context.Context) resource.Resource[FormView] {
	return resource.Success(f.view())
}

func (f *AccountForm) Render(ctx context.Context) any {
	return f.Load(ctx)
}

// Submit signs in (or registers). When the accepted reader is the one this
// screen was opened for, it moves to the home screen. Any other reader is
// recorded for SwitchTo and the screen stays put.
func (f *AccountForm) Submit(ctx context.Context, creds Credentials) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	if f.destination == route.CreateAccountScreen {
		user, err = f.accounts.Register(ctx, creds.Email, creds.Password)
	} else {
		user, err = f.accounts.Authenticate(ctx, creds.Email, creds.Password)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Warn("account form submit failed", logger.Data{"screen": f.destination})
		return nil, err
	}

	if f.session != nil && f.session.UserID == user.ID {
		return user, f.nav.Navigate(string(f.home))
	}

	f.mu.Lock()
	f.switchTo = user
	f.mu.Unlock()
	return user, nil
}

// SwitchTo returns the reader accepted by the last submit when they differ
// from the screen's session, or nil.
func (f *AccountForm) SwitchTo() *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.switchTo
}

func (f *AccountForm) Perform(ctx context.Context, action string, payload []byte) error {
	switch action {
	case "submit":
		creds := Credentials{}
		if err := decodePayload(payload, &creds); err != nil {
			return err
		}
		_, err := f.Submit(ctx, creds)
		return err
	case "switch":
		return f.nav.Navigate(f.view().Alternate)
	}
	return &UnknownActionError{f.destination, action}
}
