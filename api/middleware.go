package api

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/geekhub/mainframe/mainframe/metrics"
	"github.com/gofiber/fiber/v2"
)

const (
	requestIDHeader = "X-Request-ID"
	unmatchedRoute  = "unmatched"
)

// requestIDs hands out time ordered snowflake ids. The low bits carry a
// counter so requests within one millisecond stay distinct.
type requestIDs struct {
	seq atomic.Uint32
}

func (r *requestIDs) next() snowflake.ID {
	return snowflake.New(time.Now()) | snowflake.ID(r.seq.Add(1)&0x3FFFFF)
}

// LoggingMiddleware tags each request with an id and logs it once it has
// been handled.
func LoggingMiddleware(collector *metrics.Collector) fiber.Handler {
	ids := &requestIDs{}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := ids.next().String()
		c.Set(requestIDHeader, id)
		c.Locals("request_id", id)

		err := c.Next()
		if err != nil {
			// Let the error handler write the response before the status is
			// read.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		duration := time.Since(start)
		statusCode := c.Response().StatusCode()
		collector.ObserveRequest(routeLabel(c), statusCode, duration)

		logLevel := slog.LevelInfo
		if statusCode >= 400 && statusCode < 500 {
			logLevel = slog.LevelWarn
		} else if statusCode >= 500 {
			logLevel = slog.LevelError
		}

		attrs := []any{
			slog.String("type", "sys"),
			slog.String("request_id", id),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", statusCode),
			slog.Duration("duration", duration),
			slog.String("ip", c.IP()),
		}
		message := "HTTP request processed"
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			message = "HTTP request failed"
		}
		slog.Log(c.Context(), logLevel, message, attrs...)
		return nil
	}
}

// routeLabel names the registered route that served the request. Requests
// that only passed through middleware share one label so unknown paths cannot
// grow the metric's label set.
func routeLabel(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
		return r.Path
	}
	return unmatchedRoute
}

// ErrorHandler answers errors that escaped a handler, such as unknown routes
// and malformed bodies, with the standard envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	return SendError(c, code, errorCode(code), message, nil)
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "VALIDATION"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
