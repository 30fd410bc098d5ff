package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/database/wordgroups"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"` // validation errors
}

// IDResponse carries the id of a created or replaced word group.
type IDResponse struct {
	ID uint `json:"id"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondValidationError sends a 400 response for a payload that failed binding.
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid word group", Details: err.Error()})
}

// respondStoreError maps storage errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, wordgroups.ErrWordGroupNotFound):
		respondNotFound(c, "No word group found with the given ID")
	case errors.Is(err, wordgroups.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, database.ErrUnknownLanguage),
		errors.Is(err, database.ErrConstraintViolation),
		errors.Is(err, wordgroups.ErrNoTranslations),
		errors.Is(err, wordgroups.ErrInvalidLimit),
		errors.Is(err, wordgroups.ErrInvalidTable):
		respondBadRequest(c, err.Error())
	default:
		respondInternalError(c, err, context)
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseIntQuery reads a non-negative integer query parameter, falling back to def when absent.
func parseIntQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}
