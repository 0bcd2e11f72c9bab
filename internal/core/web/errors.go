// Package web holds the request/response helpers shared by every handler.
package web

import (
	"errors"
	"fmt"

	"ticket-sales/internal/core/database"
	"ticket-sales/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a short human readable message.
	Error string `json:"error"`
	// Fields maps request fields to the rule they failed.
	Fields map[string]string `json:"fields,omitempty"`
}

// HTTPError is an error that already knows its status code and body.
type HTTPError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// NewError creates an HTTPError.
func NewError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// ValidationError creates a 400 carrying field-level messages.
func ValidationError(fields map[string]string) *HTTPError {
	return &HTTPError{Status: fiber.StatusBadRequest, Message: "validation failed", Fields: fields}
}

// FieldError creates a 400 for a single field.
func FieldError(field, message string) *HTTPError {
	return ValidationError(map[string]string{field: message})
}

// Common responses.
var (
	ErrInternal    = NewError(fiber.StatusInternalServerError, "internal server error")
	ErrRetryLater  = NewError(fiber.StatusServiceUnavailable, "please retry")
	ErrForbidden   = NewError(fiber.StatusForbidden, "You do not have permission to perform this action")
	ErrInvalidBody = NewError(fiber.StatusBadRequest, "invalid request body")
)

// ErrorHandler is the fiber error handler. Unknown errors are logged and
// reported as a bare 500 so internals never reach the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, database.ErrTransactionConflict) {
		logger.WithRay(RayID(c)).Warn("Transaction conflict persisted after retries",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		err = ErrRetryLater
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return c.Status(httpErr.Status).JSON(ErrorResponse{
			Error:  httpErr.Message,
			Fields: httpErr.Fields,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse{Error: fiberErr.Message})
	}

	logger.WithRay(RayID(c)).Error("Unhandled request error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrInternal.Message})
}
