package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home handles GET / and lists the newest venues and artists.
func (h *BookingHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	venues, err := h.Venues.ListRecent(ctx, recentListings)
	if err != nil {
		return err
	}
	artists, err := h.Artists.ListRecent(ctx, recentListings)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"recent_venues":  venues,
		"recent_artists": artists,
	})
}
