package httpapi

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/schedule_lock/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	msgForbidden       = "Nemate dozvolu za ovu akciju."
	msgPostOnly        = "Samo POST zahtevi su dozvoljeni."
	msgMissingParams   = "Nedostaju potrebni parametri."
	msgInvalidSchedule = "Neispravan winter ili summer schedule_id."
	msgUnknownAction   = "Nepoznata akcija: "
	msgDatabaseError   = "Greška baze podataka: "
	msgInternalError   = "Greška: "
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func errorBody(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

// errorStatus maps a lock service error to a status code and message.
func errorStatus(err error, action string) (int, string) {
	if !service.IsValidation(err) {
		return http.StatusInternalServerError, msgDatabaseError + err.Error()
	}

	switch {
	case errors.Is(err, service.ErrUnknownAction):
		return http.StatusBadRequest, msgUnknownAction + action
	case errors.Is(err, service.ErrInvalidScheduleID):
		return http.StatusBadRequest, msgInvalidSchedule
	default:
		return http.StatusBadRequest, msgMissingParams
	}
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, errorBody(message))
}
