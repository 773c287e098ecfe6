package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Seth7171/TaleWeaver-sub000/internal/driver"
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

// Machine-readable error codes.
const (
	CodeBusy           = "book_busy"
	CodeNotDragging    = "not_dragging"
	CodeEngineStopped  = "engine_stopped"
	CodeInvalidPage    = "invalid_page"
	CodeInvalidRequest = "invalid_request"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeInvalidRequest})
}

// respondBindError sends a 400 for a body that failed to bind. Failed
// binding rules are listed per field in Details.
func respondBindError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   message,
		Code:    CodeInvalidRequest,
		Details: bindErrorDetails(err),
	})
}

func bindErrorDetails(err error) any {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return fields
	}
	return err.Error()
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, code, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message, Code: code})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondDriverError maps an error returned by the engine driver.
func respondDriverError(c *gin.Context, err error, context string) {
	if errors.Is(err, driver.ErrNotRunning) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: CodeEngineStopped})
		return
	}
	respondInternalError(c, err, context)
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message and optional data.
func respondSuccess(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message, Data: data})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response for work that finishes on
// later ticks.
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parsePageParam extracts and validates a 1-based page number from URL parameters.
// Returns the parsed number or responds with a 400 error and returns 0, false.
func parsePageParam(c *gin.Context, paramName string) (int, bool) {
	n, err := strconv.Atoi(c.Param(paramName))
	if err != nil || n < 1 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return n, true
}

// durationMS converts an optional millisecond field, falling back to def.
// Negative values are clamped to zero.
func durationMS(ms *int64, def time.Duration) time.Duration {
	if ms == nil {
		return def
	}
	if *ms < 0 {
		return 0
	}
	return time.Duration(*ms) * time.Millisecond
}
