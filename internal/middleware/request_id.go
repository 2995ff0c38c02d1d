package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	// RequestIDHeader carries the correlation id in and out.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey stores the id in the echo context.
	RequestIDKey = "request_id"
	// LoggerKey stores the request scoped logger in the echo context.
	LoggerKey = "logger"
)

// RequestID reuses an incoming X-Request-ID or generates a UUID, and
// stores a logger tagged with it for handlers to use.
func RequestID(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			l := base.With().Str("request_id", requestID).Logger()
			c.Set(LoggerKey, &l)
			c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
			return next(c)
		}
	}
}

// GetRequestID returns the request id, or "" when RequestID did not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetLogger returns the request scoped logger.  Outside of RequestID it
// falls back to the logger attached to the request context, which is
// zerolog's disabled logger when none was set.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	return zerolog.Ctx(c.Request().Context())
}
