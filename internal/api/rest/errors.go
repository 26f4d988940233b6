package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roboteam/door-tracker/internal/api/shared/errors"
	"github.com/roboteam/door-tracker/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errors.NewNotFoundError(message, details...))
}

// respondForbidden responds with a forbidden error
func respondForbidden(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusForbidden, errors.NewForbiddenError(message, details...))
}

// respondUnauthorized responds with an unauthorized error
func respondUnauthorized(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusUnauthorized, errors.NewUnauthorizedError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, errors.NewValidationError(message))
}

// respondInternalError responds with an internal server error
func respondInternalError(c *gin.Context, err error, message string, details ...string) {
	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, errors.NewInternalError(message, details...))
}
