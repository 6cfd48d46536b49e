package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/strohel/za-kolik-pojedu/internal/repository"
	"github.com/strohel/za-kolik-pojedu/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrNoEligibleCategories),
		errors.Is(err, service.ErrUnknownTier),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrUnknownProvider),
		errors.Is(err, service.ErrInvalidDistance),
		errors.Is(err, service.ErrInvalidTimeRange):
		return http.StatusBadRequest

	// Placeholder providers
	case errors.Is(err, service.ErrProviderNotImplemented):
		return http.StatusNotImplemented

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
