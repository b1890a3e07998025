package hooks

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
)

// errorStatusCode maps the service failure taxonomy to HTTP status codes
func errorStatusCode(err error) int {
	var (
		validationErr   *services.ValidationError
		notFoundErr     *services.NotFoundError
		invalidPassErr  *services.InvalidPasswordError
		forbiddenErr    *services.ForbiddenError
		conflictErr     *services.ConflictError
		userNotFoundErr *services.UserNotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &invalidPassErr):
		return http.StatusForbidden
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &userNotFoundErr):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// abortRoomError writes the room endpoints' error body
func abortRoomError(c *gin.Context, err error) {
	c.JSON(errorStatusCode(err), gin.H{
		"status": false,
		"error":  err.Error(),
	})
}

// abortMessageError writes the message endpoints' error body
func abortMessageError(c *gin.Context, err error) {
	c.JSON(errorStatusCode(err), gin.H{
		"error": err.Error(),
	})
}
