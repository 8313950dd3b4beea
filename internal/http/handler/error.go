package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sharescribe/internal/http/middleware"
	"sharescribe/internal/service"
	"sharescribe/internal/validation"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.GetRequestID(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

type mappedError struct {
	target  error
	status  int
	code    string
	message string
}

// Service errors that are safe to report. Anything else becomes a logged 500.
var serviceErrors = []mappedError{
	{service.ErrIDRequired, fiber.StatusBadRequest, "INVALID_ID", "id is required"},
	{service.ErrReaderNil, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required"},
	{service.ErrFileTooLarge, fiber.StatusBadRequest, "FILE_TOO_LARGE", "file exceeds the upload limit"},
	{service.ErrInvalidFileType, fiber.StatusBadRequest, "INVALID_FILE_TYPE", "only PDF files are accepted"},
	{service.ErrAlreadyPro, fiber.StatusBadRequest, "ALREADY_PRO", "account is already on the pro plan"},
	{service.ErrVerificationFailed, fiber.StatusBadRequest, "PAYMENT_VERIFICATION_FAILED", "payment signature does not match"},
	{service.ErrPasswordRequired, fiber.StatusForbidden, "PASSWORD_REQUIRED", "this document is password protected"},
	{service.ErrInvalidPassword, fiber.StatusForbidden, "INVALID_PASSWORD", "incorrect password"},
	{service.ErrQuotaExceeded, fiber.StatusForbidden, "QUOTA_EXCEEDED", "plan limit reached"},
	{service.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "access denied"},
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "resource not found"},
	{service.ErrExpired, fiber.StatusGone, "LINK_EXPIRED", "this link has expired"},
}

// respondError maps a service error onto the envelope. Unknown errors are handed to the
// global ErrorHandler, which logs them and answers 500.
func respondError(c *fiber.Ctx, err error) error {
	var ve *validation.Error
	if errors.As(err, &ve) {
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", ve.Error())
	}
	if errors.Is(err, service.ErrValidation) {
		// Messages wrapped around ErrValidation are written by the service for clients.
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			return writeError(c, m.status, m.code, m.message)
		}
	}
	return err
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Errors that are not *fiber.Error are logged with the request ID and reported as 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	log = log.Named("http")

	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			log.Error("request_failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "access denied")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "RATE_LIMITED", "too many requests")
		case fiber.StatusServiceUnavailable:
			return writeError(c, status, "SERVICE_UNAVAILABLE", "dependency unavailable")
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}
