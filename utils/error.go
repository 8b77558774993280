package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := GetLogger()
	logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a service error to its HTTP status and writes the
// standard error body. Unclassified errors become 500s.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		GetLogger().Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindPermission:
		status = http.StatusForbidden
	case KindConflict:
		status = http.StatusConflict
	case KindNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, ErrorResponse{Message: appErr.Message, Kind: string(appErr.Kind)})
}
