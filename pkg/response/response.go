package response

import (
	"log"
	"net/http"

	"anoa.com/jelajahpath/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Envelope is the JSON shape every endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// Success writes the success envelope.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Error writes the failure envelope. Internal errors are logged with their
// cause but surfaced as a generic message.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		msg = apperror.ErrInternal.Error()
	}

	c.JSON(code, Envelope{Success: false, Error: msg})
}
