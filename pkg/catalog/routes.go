package catalog

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the catalog lookup routes behind the given
// middleware.
func RegisterRoutes(e *echo.Echo, catalog Searcher, mw ...echo.MiddlewareFunc) {
	h := &handler{catalog: catalog}

	g := e.Group("/catalog", mw...)
	g.GET("/search", h.search)
	g.GET("/volumes/:id", h.volume)
}
