package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthTimeout = 2 * time.Second

// Pinger is the part of the storage handle the health check needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health handles GET /healthz.  The site is up when the booking store
// answers a ping; otherwise it reports 503 so load balancers stop
// routing to it.
func Health(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			logger(c).Warn().Err(err).Msg("health check: store unreachable")
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
}
