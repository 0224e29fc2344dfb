package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/office-seat-booking/internal/logging"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
// Clients check for the ERROR field before treating a body as a result.
type ErrorResponse struct {
	Error   string        `json:"ERROR"`
	Kind    apperror.Kind `json:"kind"`
	Details string        `json:"details,omitempty"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code.
// If it's not an AppError, it logs the cause and responds 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			logging.FromContext(c.Request.Context()).Debug("request failed",
				slog.String("kind", string(appErr.Kind)),
				slog.Any("cause", appErr.Err),
			)
		}
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message, Kind: appErr.Kind})
		return
	}

	logging.FromContext(c.Request.Context()).Error("unhandled error", slog.Any("error", err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Kind:  apperror.KindStoreFailure,
	})
}

// BadRequest sends a 400 invalid_input response, used for binding failures.
func BadRequest(c *gin.Context, message string, cause error) {
	body := ErrorResponse{Error: message, Kind: apperror.KindInvalidInput}
	if cause != nil {
		body.Details = cause.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
