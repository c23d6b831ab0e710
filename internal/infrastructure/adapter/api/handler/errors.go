package handler

import (
	"errors"
	"net/http"
	"strconv"

	domainerr "gift-economy/internal/domain/error"
	"gift-economy/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// httpStatus maps domain errors onto HTTP status codes
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrValidation),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrInsufficientFunds):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainerr.ErrBanned),
		errors.Is(err, domainerr.ErrUnauthorized):
		return http.StatusForbidden
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrDuplicateUsername),
		errors.Is(err, domainerr.ErrAlreadyOwned),
		errors.Is(err, domainerr.ErrAlreadyClaimed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage translates a domain error into the client-facing message.
// Internal detail stays in the logs.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domainerr.ErrValidation):
		return "Invalid request input"
	case errors.Is(err, domainerr.ErrInvalidAmount):
		return "Invalid amount"
	case errors.Is(err, domainerr.ErrInsufficientFunds):
		return "Insufficient balance"
	case errors.Is(err, domainerr.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, domainerr.ErrBanned):
		return "User is banned"
	case errors.Is(err, domainerr.ErrUnauthorized):
		return "Admin access required"
	case errors.Is(err, domainerr.ErrAccountNotFound):
		return "User not found"
	case errors.Is(err, domainerr.ErrGiftNotFound):
		return "Gift not found"
	case errors.Is(err, domainerr.ErrDuplicateUsername):
		return "Username already exists"
	case errors.Is(err, domainerr.ErrAlreadyOwned):
		return "Gift already purchased"
	case errors.Is(err, domainerr.ErrAlreadyClaimed):
		return "Already claimed today"
	default:
		return "Internal server error"
	}
}

// respondError writes the standardized error body for a domain error
func respondError(c *gin.Context, err error) {
	c.JSON(httpStatus(err), dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: errorMessage(err),
	})
}

// userIDFromHeader extracts the caller identity from the X-User-Id header
func userIDFromHeader(c *gin.Context) (uint64, bool) {
	raw := c.GetHeader("X-User-Id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// adminUsername extracts the admin identity, header first with a query
// parameter fallback for the panel's GET requests
func adminUsername(c *gin.Context) string {
	if username := c.GetHeader("X-Admin-Username"); username != "" {
		return username
	}
	return c.Query("admin_username")
}
