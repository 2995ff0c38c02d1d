package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/errs"
)

// RequestLogger emits one line per request.  When the handler returned
// an error the status is taken from it, because the error handler has
// not written the response yet when this runs.
func RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogMethod:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil {
				status = statusOf(v.Error)
			}

			logger := GetLogger(c)
			var e *zerolog.Event
			switch {
			case status >= 500:
				e = logger.Error().Err(v.Error)
			case status >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}
			e.Dur("latency", v.Latency).
				Int("status", status).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("ip", c.RealIP()).
				Msg("API")
			return nil
		},
	})
}

func statusOf(err error) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// GlobalErrorHandler renders every error as an errs.HTTPError.  Errors
// that are not already HTTP errors become a generic 500; the original
// error is only logged.
func GlobalErrorHandler(err error, c echo.Context) {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	var body *errs.HTTPError

	switch {
	case errors.As(err, &httpErr):
		body = httpErr
	case errors.As(err, &echoErr):
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = http.StatusText(echoErr.Code)
		}
		body = &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: msg,
			Status:  echoErr.Code,
		}
	default:
		body = errs.NewInternalServerError()
	}

	logger := GetLogger(c)
	ev := logger.Warn()
	if body.Status >= 500 {
		ev = logger.Error()
	}
	ev.Err(err).Int("status", body.Status).Str("error_code", body.Code).Msg(body.Message)

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(body.Status)
		return
	}
	_ = c.JSON(body.Status, body)
}
