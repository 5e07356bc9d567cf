package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/readerapp/reader/pkg/auth"
	"github.com/readerapp/reader/pkg/binder"
	"github.com/readerapp/reader/pkg/books"
	"github.com/readerapp/reader/pkg/catalog"
	"github.com/readerapp/reader/pkg/config"
	"github.com/readerapp/reader/pkg/errcodes"
	"github.com/readerapp/reader/pkg/navigation"
	"github.com/readerapp/reader/pkg/route"
	"github.com/readerapp/reader/pkg/screens"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	golibLogger "github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB, catalogClient catalog.Searcher) (*http.Server, error) {
	e, err := newEcho(cfg, db, catalogClient)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(cfg *config.Config, db *bun.DB, catalogClient catalog.Searcher) (*echo.Echo, error) {
	destination := route.Destination(cfg.DefaultDestination)
	if !destination.Valid() || destination.RequiresParameter() {
		return nil, errors.Errorf("invalid default destination %q", cfg.DefaultDestination)
	}

	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	authService := auth.RegisterRoutes(e, db, cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	catalog.RegisterRoutes(e, catalogClient, authMiddleware.Authenticate)

	booksGroup := e.Group("/books")
	booksGroup.Use(authMiddleware.Authenticate)
	bookService := books.RegisterRoutesWithGroup(booksGroup, db, catalogClient)

	// Each reader gets their own back stack.
	sessions := navigation.NewSessions(route.NewRegistry(destination), screens.Deps{
		Books:      bookService,
		Catalog:    catalogClient,
		Accounts:   authService,
		MaxResults: cfg.CatalogMaxResults,
	}, golibLogger.New())

	navigationGroup := e.Group("/navigation")
	navigationGroup.Use(authMiddleware.Authenticate)
	navigation.RegisterRoutesWithGroup(navigationGroup, sessions, authMiddleware)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
