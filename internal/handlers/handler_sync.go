package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledback/ledback_backend/internal/apperrors"
	portssvc "github.com/ledback/ledback_backend/internal/core/ports/services"
	"github.com/ledback/ledback_backend/internal/dto"
	"github.com/ledback/ledback_backend/internal/middleware"
)

// syncHandler handles the pull/push delta-sync endpoints.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

func newSyncHandler(svc portssvc.SyncSvcFacade) *syncHandler {
	return &syncHandler{syncService: svc}
}

func (h *syncHandler) pull(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	owner, ok := middleware.GetOwnerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// A client that has never synced pulls everything.
	since := time.Unix(0, 0).UTC()
	if s := c.Query("since"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be an ISO 8601 timestamp"})
			return
		}
		since = parsed
	}

	delta, err := h.syncService.Pull(c.Request.Context(), owner, since)
	if err != nil {
		logger.Error("Pull failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pull changes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPullResponse(delta))
}

func (h *syncHandler) push(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	owner, ok := middleware.GetOwnerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for push", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	batch, err := req.ToPushBatch()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serverTime, err := h.syncService.Push(c.Request.Context(), owner, batch)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("Push failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply push batch"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PushResponse{OK: true, ServerTime: serverTime})
}
