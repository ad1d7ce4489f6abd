package errors

import (
	"net/http"
	"os"

	"codeberg.org/papermind/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "unauthorized", "not_found")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// standard error codes
const (
	CodeUnauthorized    = "unauthorized"
	CodeNotFound        = "not_found"
	CodeValidationError = "validation_error"
	CodeServerError     = "server_error"
	CodeBadRequest      = "bad_request"
	CodeTooManyRequests = "too_many_requests"
)

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeUnauthorized,
		Message: message,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message, details string) {
	if message == "" {
		message = "invalid request"
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
		Details: details,
	})
}

// returns a 400 validation error with details
func ValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: "validation failed",
		Details: details,
	})
}

// logs the error and returns a 500 response; details are hidden in production
func InternalError(c *gin.Context, err error, message string) {
	if message == "" {
		message = "internal server error"
	}

	logger.ErrorErr(err, message, "path", c.Request.URL.Path)

	resp := ErrorResponse{
		Error:   CodeServerError,
		Message: message,
	}

	if os.Getenv("ENVIRONMENT") != "production" && err != nil {
		resp.Details = err.Error()
	}

	c.JSON(http.StatusInternalServerError, resp)
}
