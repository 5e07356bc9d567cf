package errcodes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/readerapp/reader/pkg/route"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsAndAs(t *testing.T) {
	t.Parallel()

	err := errors.WithStack(NotFound("Book"))

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusNotFound, e.HTTPCode)
	assert.Equal(t, "not_found", e.Code)
	assert.ErrorIs(t, err, NotFound("Book"))
	assert.NotErrorIs(t, err, NotFound("User"))
}

func TestHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		contains string
	}{
		{"custom error", UnrecognizedRoute("Nope"), http.StatusNotFound, "unrecognized_route", `"Nope"`},
		{"wrapped custom error", errors.WithStack(UpstreamUnavailable("Book catalog")), http.StatusBadGateway, "upstream_unavailable", "Book catalog"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "method_not_allowed", "Method Not Allowed"},
		{"generic error", errors.New("kaboom"), http.StatusInternalServerError, "internal_server_error", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			rr := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rr)

			NewHandler().Handle(tt.err, c)

			assert.Equal(t, tt.status, rr.Code)
			var body struct {
				Error struct {
					Code       string `json:"code"`
					Message    string `json:"message"`
					StatusCode int    `json:"status_code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.status, body.Error.StatusCode)
			assert.Contains(t, body.Error.Message, tt.contains)
		})
	}
}

func TestHandler_TranslatesUnrecognizedRoute(t *testing.T) {
	t.Parallel()

	e := echo.New()
	rr := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rr)

	NewHandler().Handle(errors.WithStack(&route.UnrecognizedRouteError{Route: "Bogus/1"}), c)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "unrecognized_route")
	assert.Contains(t, rr.Body.String(), "Bogus/1")
}
