package router // package router defines how HTTP routes are registered

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/fyyur/internal/handler"
)

// RegisterRoutes registers the health check, which pings db.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterBooking registers the site pages and form endpoints.  limiter
// guards the mutating routes (form submissions and deletes); pass nil to
// leave them unguarded.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, limiter echo.MiddlewareFunc) {
	var mw []echo.MiddlewareFunc
	if limiter != nil {
		mw = append(mw, limiter)
	}
	e.GET("/", h.Home)
	registerVenueRoutes(e.Group("/venues"), h, mw)
	registerArtistRoutes(e.Group("/artists"), h, mw)
	registerShowRoutes(e.Group("/shows"), h, mw)
}
