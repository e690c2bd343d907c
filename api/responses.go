package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/geekhub/mainframe/internal/domain/cards"
	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/logger"
	"github.com/gofiber/fiber/v2"
)

// APIResponse is the envelope every route answers with.
type APIResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data any, message string) error {
	return c.Status(http.StatusOK).JSON(APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func SendError(c *fiber.Ctx, status int, code, message string, details map[string]string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now().UTC(),
	})
}

func SendBadRequest(c *fiber.Ctx, message string, details map[string]string) error {
	return SendError(c, http.StatusBadRequest, errs.KindValidation.String(), message, details)
}

// statusOf maps an engine error kind to the HTTP status it is reported with.
func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// SendEngineError reports an engine failure. Store and invariant failures
// are logged and answered without internal detail.
func SendEngineError(c *fiber.Ctx, err error) error {
	kind := errs.KindOf(err)
	status := statusOf(kind)

	message := userMessage(err, kind)
	var details map[string]string
	var notOwned *cards.NotOwnedError
	if errors.As(err, &notOwned) && len(notOwned.Suggestions) > 0 {
		details = map[string]string{"suggestions": strings.Join(notOwned.Suggestions, ", ")}
	}

	if status >= http.StatusInternalServerError {
		logger.LogError("Request failed", err, "path", c.Path())
	}

	code := kind.String()
	if kind == errs.KindUnknown || kind == errs.KindInvariant {
		code = "INTERNAL_SERVER_ERROR"
	}
	return SendError(c, status, code, message, details)
}

func userMessage(err error, kind errs.Kind) string {
	switch {
	case errors.Is(err, errs.ErrAlreadyActive):
		return "You're already using this card."
	case errors.Is(err, errs.ErrCardNotOwned):
		return "Card not found in your collection. Type !getcards to see available cards."
	case errors.Is(err, errs.ErrReportNotFound):
		return "User flight report not found"
	case errors.Is(err, errs.ErrUserNotFound):
		return "User not found"
	}

	switch kind {
	case errs.KindValidation:
		return causeOf(err).Error()
	case errs.KindNotFound:
		return "Not found"
	case errs.KindTransient:
		return "Service temporarily unavailable, please retry"
	default:
		return "Internal Server Error"
	}
}

// causeOf strips the engine wrappers so validation messages read without the
// operation prefix.
func causeOf(err error) error {
	var e *errs.Error
	for errors.As(err, &e) {
		err = e.Err
	}
	return err
}
