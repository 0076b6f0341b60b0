package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/Freeeeeet/schedule_lock/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 16

type LockService interface {
	ToggleLock(ctx context.Context, cmd service.ToggleLockCommand) (*service.LockResult, error)
	Status(ctx context.Context) (*service.LockStatus, error)
}

type ScheduleLockHandler struct {
	service LockService
	logger  *zap.Logger
}

func NewScheduleLockHandler(svc LockService, logger *zap.Logger) *ScheduleLockHandler {
	return &ScheduleLockHandler{
		service: svc,
		logger:  logger,
	}
}

// ToggleLock handles POST /api/schedule-lock. Other methods get 400.
func (h *ScheduleLockHandler) ToggleLock(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		writeError(c, http.StatusBadRequest, msgPostOnly)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		writeError(c, http.StatusBadRequest, msgMissingParams)
		return
	}

	cmd, err := parseToggleRequest(body)
	if err != nil {
		h.logger.Debug("Invalid lock request", zap.Error(err))
		writeError(c, http.StatusBadRequest, msgMissingParams)
		return
	}

	result, err := h.service.ToggleLock(c.Request.Context(), cmd)
	if err != nil {
		status, message := errorStatus(err, cmd.Action)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Schedule lock failed",
				zap.String("request_id", c.GetString(ctxRequestID)),
				zap.Error(err))
		}
		writeError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, result)
}

type statusResponse struct {
	Success bool `json:"success"`
	*service.LockStatus
}

// Status handles GET /api/schedule-lock/status.
func (h *ScheduleLockHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read lock status", zap.Error(err))
		writeError(c, http.StatusInternalServerError, msgDatabaseError+err.Error())
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: true, LockStatus: status})
}
