package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"casevault/internal/http/middleware"
	"casevault/internal/repository"
	"casevault/internal/service"
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

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "CASE_NOT_FOUND", "INVALID_CATEGORY")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

var errorMappings = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{repository.ErrCaseNotFound, fiber.StatusNotFound, "CASE_NOT_FOUND", "case not found"},
	{repository.ErrFolderNotFound, fiber.StatusNotFound, "FOLDER_NOT_FOUND", "folder not found"},
	{service.ErrDocumentNotFound, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"},
	{service.ErrItemNotFound, fiber.StatusNotFound, "ITEM_NOT_FOUND", "item not found"},
	{repository.ErrFolderExists, fiber.StatusConflict, "FOLDER_EXISTS", "folder already exists"},
	{service.ErrURIImmutable, fiber.StatusConflict, "URI_IMMUTABLE", "document uri cannot be changed"},
	{service.ErrIDRequired, fiber.StatusBadRequest, "ID_REQUIRED", "id is required"},
	{service.ErrNameRequired, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required"},
	{service.ErrURIRequired, fiber.StatusBadRequest, "URI_REQUIRED", "uri is required"},
	{service.ErrInvalidCategory, fiber.StatusBadRequest, "INVALID_CATEGORY", "invalid document category"},
	{service.ErrInvalidDocumentType, fiber.StatusBadRequest, "INVALID_DOCUMENT_TYPE", "document type must be pdf, image or photo"},
	{service.ErrInvalidPriority, fiber.StatusBadRequest, "INVALID_PRIORITY", "priority must be high, medium or low"},
}

// writeServiceError translates domain errors to HTTP responses. Anything
// unrecognized becomes a 500 with no detail.
func writeServiceError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return writeError(c, m.status, m.code, m.message)
		}
	}
	c.Locals(middleware.ErrorLocalKey, err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
