package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"casevault/internal/logging"
)

// ErrorLocalKey holds an internal error a handler chose not to expose, so the
// request log still records it.
const ErrorLocalKey = "error"

// Logger is a middleware that logs each HTTP request as one zerolog event.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - duration_ms
func Logger(logger zerolog.Logger) fiber.Handler {
	log := logging.Component(logger, "http")

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// The global error handler runs after this middleware returns, so
		// derive the final status from err when there is one.
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		default:
			ev = log.Info()
		}

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		ev = ev.Str("event", "http_request").
			Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("duration_ms", float64(time.Since(start).Microseconds())/1000)

		if herr, ok := c.Locals(ErrorLocalKey).(error); ok {
			ev = ev.Err(herr)
		} else if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("")

		return err
	}
}
