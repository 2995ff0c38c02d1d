package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// registerShowRoutes maps the /shows pages.
func registerShowRoutes(g *echo.Group, h *handler.BookingHandler, mw []echo.MiddlewareFunc) {
	g.GET("", h.ListShows)
	g.GET("/create", h.NewShowForm)
	g.POST("/create", h.CreateShow, mw...)
}
