package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mrlokans/moodsnapshot/internal/entities"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: entities.CodeNotFound})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("op", context).Msg("Internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Code:  entities.ErrorCode(err),
	})
}

// respondJournalError maps a journal error onto a status code by its kind.
func respondJournalError(c *gin.Context, err error, context string) {
	code := entities.ErrorCode(err)
	switch code {
	case entities.CodeNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: code})
	case entities.CodeValidation:
		resp := ErrorResponse{Error: err.Error(), Code: code}
		var ve entities.ValidationError
		if errors.As(err, &ve) {
			resp.Details = gin.H{"field": ve.Field}
		}
		c.JSON(http.StatusBadRequest, resp)
	case entities.CodeInvalidFormat:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: code})
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseOptionalInt reads an integer query parameter, returning fallback when it is
// absent. On a malformed value it responds with a 400 and returns false.
func parseOptionalInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}
