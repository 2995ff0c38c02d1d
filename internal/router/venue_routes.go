package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// registerVenueRoutes maps the /venues pages.  The static /create path
// takes precedence over /:id in echo's router.
func registerVenueRoutes(g *echo.Group, h *handler.BookingHandler, mw []echo.MiddlewareFunc) {
	g.GET("", h.ListVenues)
	g.POST("/search", h.SearchVenues)
	g.GET("/create", h.NewVenueForm)
	g.POST("/create", h.CreateVenue, mw...)
	g.GET("/:id", h.ShowVenue)
	g.GET("/:id/edit", h.EditVenueForm)
	g.POST("/:id/edit", h.UpdateVenue, mw...)
	g.DELETE("/:id", h.DeleteVenue, mw...)
}
