package auth

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/readerapp/reader/pkg/binder"
	"github.com/readerapp/reader/pkg/errcodes"
	"github.com/readerapp/reader/pkg/migrations"
	"github.com/readerapp/reader/pkg/models"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const testSecret = "test-jwt-secret"

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func newTestContext(t *testing.T, payload, method, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	require.FailNow(t, "session cookie not set")
	return nil
}

func TestService_RegisterAndAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(setupTestDB(t), testSecret)

	user, err := svc.Register(ctx, "reader@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	got, err := svc.Authenticate(ctx, "READER@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "reader@example.com", "wrong password")
	assert.ErrorIs(t, err, errcodes.Unauthorized(invalidCredentials))

	_, err = svc.Authenticate(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, errcodes.Unauthorized(invalidCredentials))
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(setupTestDB(t), testSecret)

	_, err := svc.Register(ctx, "reader@example.com", "correct horse")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Reader@Example.com", "another password")
	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusConflict, codeErr.HTTPCode)
}

func TestService_Tokens(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, testSecret)
	token, err := svc.GenerateToken(&models.User{ID: 7, Email: "a@b.c"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)

	other := NewService(nil, "another-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestHandler_RegisterThenMe(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db, testSecret)
	h := &handler{authService: svc}
	mw := NewMiddleware(svc)

	c, rr := newTestContext(t, `{"email":"  Jo@Example.com ","password":"securepassword"}`, http.MethodPost, "/auth/register")
	require.NoError(t, h.register(c))
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created MeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "jo@example.com", created.Email)
	assert.Equal(t, "jo", created.DisplayName)

	cookie := sessionCookie(t, rr)
	assert.True(t, cookie.HttpOnly)

	c, rr = newTestContext(t, "", http.MethodGet, "/auth/me")
	c.Request().AddCookie(cookie)
	require.NoError(t, mw.Authenticate(h.me)(c))

	var me MeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, created.ID, me.ID)

	session, ok := SessionFromEcho(c)
	require.True(t, ok)
	assert.Equal(t, created.ID, session.UserID)
	assert.Equal(t, session, SessionFromContext(c.Request().Context()))
}

func TestHandler_Login_InvalidPassword(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db, testSecret)
	h := &handler{authService: svc}

	_, err := svc.Register(context.Background(), "reader@example.com", "securepassword")
	require.NoError(t, err)

	c, rr := newTestContext(t, `{"email":"reader@example.com","password":"not-the-password"}`, http.MethodPost, "/auth/login")
	err = h.login(c)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusUnauthorized, codeErr.HTTPCode)
	assert.Empty(t, rr.Result().Cookies())
}

func TestHandler_Login_ValidatesPayload(t *testing.T) {
	t.Parallel()
	h := &handler{authService: NewService(setupTestDB(t), testSecret)}

	c, _ := newTestContext(t, `{"email":"not-an-email","password":"short"}`, http.MethodPost, "/auth/login")
	err := h.login(c)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusUnprocessableEntity, codeErr.HTTPCode)
}

func TestMiddleware_Authenticate(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db, testSecret)
	mw := NewMiddleware(svc)

	called := false
	next := func(echo.Context) error {
		called = true
		return nil
	}

	t.Run("missing cookie", func(t *testing.T) {
		c, _ := newTestContext(t, "", http.MethodGet, "/books")
		err := mw.Authenticate(next)(c)
		assert.ErrorIs(t, err, errcodes.Unauthorized("Authentication required"))
	})

	t.Run("garbage token", func(t *testing.T) {
		c, _ := newTestContext(t, "", http.MethodGet, "/books")
		c.Request().AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
		err := mw.Authenticate(next)(c)
		assert.ErrorIs(t, err, errcodes.Unauthorized("Invalid or expired token"))
	})

	t.Run("valid token", func(t *testing.T) {
		user, err := svc.Register(context.Background(), "reader@example.com", "securepassword")
		require.NoError(t, err)
		token, err := svc.GenerateToken(user)
		require.NoError(t, err)

		c, _ := newTestContext(t, "", http.MethodGet, "/navigation")
		c.Request().AddCookie(&http.Cookie{Name: CookieName, Value: token})
		require.NoError(t, mw.Authenticate(next)(c))

		session := SessionFromContext(c.Request().Context())
		require.NotNil(t, session)
		assert.Equal(t, user.ID, session.UserID)
	})

	assert.True(t, called)
}

func TestMiddleware_SignIn(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db, testSecret)
	mw := NewMiddleware(svc)
	ctx := context.Background()

	alice, err := svc.Register(ctx, "alice@example.com", "securepassword")
	require.NoError(t, err)
	bob, err := svc.Register(ctx, "bob@example.com", "securepassword")
	require.NoError(t, err)

	c, rr := newTestContext(t, "", http.MethodPost, "/navigation/actions")
	c.Set("session", NewSession(alice))
	c.SetRequest(c.Request().WithContext(WithSession(c.Request().Context(), NewSession(alice))))

	require.NoError(t, mw.SignIn(c, bob))

	session, ok := SessionFromEcho(c)
	require.True(t, ok)
	assert.Equal(t, bob.ID, session.UserID)
	assert.Equal(t, bob.ID, SessionFromContext(c.Request().Context()).UserID)

	claims, err := svc.ValidateToken(sessionCookie(t, rr).Value)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, claims.UserID)
}

func TestSession_DisplayName(t *testing.T) {
	t.Parallel()

	var missing *Session
	assert.Equal(t, "N/A", missing.DisplayName())
	assert.Equal(t, "N/A", (&Session{UserID: 1}).DisplayName())
	assert.Equal(t, "email", (&Session{UserID: 1, Email: "email@gmail.com"}).DisplayName())
	assert.Nil(t, NewSession(nil))
}
