package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// registerArtistRoutes maps the /artists pages.
func registerArtistRoutes(g *echo.Group, h *handler.BookingHandler, mw []echo.MiddlewareFunc) {
	g.GET("", h.ListArtists)
	g.POST("/search", h.SearchArtists)
	g.GET("/create", h.NewArtistForm)
	g.POST("/create", h.CreateArtist, mw...)
	g.GET("/:id", h.ShowArtist)
	g.GET("/:id/edit", h.EditArtistForm)
	g.POST("/:id/edit", h.UpdateArtist, mw...)
	g.DELETE("/:id", h.DeleteArtist, mw...)
}
