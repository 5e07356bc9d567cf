package books

import (
	"github.com/labstack/echo/v4"
	"github.com/readerapp/reader/pkg/catalog"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers book routes on a group that has already
// been authenticated.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, catalogClient catalog.Searcher) *Service {
	bookService := NewService(db)

	h := &handler{
		bookService: bookService,
		catalog:     catalogClient,
	}

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/shelf", h.shelf)
	g.GET("/stats", h.stats)
	g.GET("/:id", h.retrieve)
	g.POST("/:id", h.update)

	return bookService
}
