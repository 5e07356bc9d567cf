package navigation

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutesWithGroup registers the navigation routes on an
// authenticated group. signIn is used when a reader signs in as someone else
// from the login or create-account screen.
func RegisterRoutesWithGroup(g *echo.Group, sessions *Sessions, signIn SignIner) {
	h := &handler{sessions: sessions, signIn: signIn}

	g.GET("", h.retrieve)
	g.POST("/navigate", h.navigate)
	g.POST("/back", h.back)
	g.POST("/actions", h.perform)
	g.POST("/reset", h.reset)
}
