package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/plategenie/server/pkg/errors"
)

// JSON writes an arbitrary payload with the given status code.
func JSON(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

// Message writes a {"message": ...} body, the shape every non-entity
// endpoint responds with.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string) {
	Message(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden error
func Forbidden(c *gin.Context, message string) {
	Message(c, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string) {
	Message(c, http.StatusNotFound, message)
}

// Conflict sends a 409 Conflict error
func Conflict(c *gin.Context, message string) {
	Message(c, http.StatusConflict, message)
}

// ServerError sends a 500 Internal Server Error
func ServerError(c *gin.Context, message string) {
	Message(c, http.StatusInternalServerError, message)
}

// FromError maps a domain error to its HTTP status and writes the given
// message. Unclassified errors collapse to a generic 500 so internal
// detail never leaks to the caller.
func FromError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		BadRequest(c, message)
	case errors.Is(err, apperrors.ErrInvalidOTP):
		BadRequest(c, message)
	case errors.Is(err, apperrors.ErrUnauthorized):
		Unauthorized(c, message)
	case errors.Is(err, apperrors.ErrUnverified):
		Forbidden(c, message)
	case errors.Is(err, apperrors.ErrForbidden):
		Forbidden(c, message)
	case errors.Is(err, apperrors.ErrNotFound):
		NotFound(c, message)
	case errors.Is(err, apperrors.ErrDuplicate):
		Conflict(c, message)
	default:
		ServerError(c, message)
	}
}
