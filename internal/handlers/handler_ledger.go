package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledback/ledback_backend/internal/apperrors"
	"github.com/ledback/ledback_backend/internal/core/domain"
	portssvc "github.com/ledback/ledback_backend/internal/core/ports/services"
	"github.com/ledback/ledback_backend/internal/dto"
	"github.com/ledback/ledback_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests related to ledgers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(svc portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: svc}
}

func (h *ledgerHandler) listLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// Anonymous callers get the global catalog only.
	owner, _ := middleware.GetOwnerFromContext(c)

	ledgers, err := h.ledgerService.ListLedgers(c.Request.Context(), owner)
	if err != nil {
		logger.Error("Failed to list ledgers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ledgers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponses(ledgers))
}

func (h *ledgerHandler) createLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	owner, ok := middleware.GetOwnerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ledger := domain.Ledger{
		Name:             req.Name,
		GroupName:        req.GroupName,
		Nature:           req.Nature,
		IsParty:          req.IsParty,
		IsGroup:          req.IsGroup,
		CategoryLedgerID: req.Parent(),
	}

	created, err := h.ledgerService.CreateLedger(c.Request.Context(), owner, ledger)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"code": "DUPLICATE_LEDGER_NAME", "error": err.Error()})
		default:
			logger.Error("Failed to create ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ledger"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerResponse(created))
}

func (h *ledgerHandler) deleteLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	owner, ok := middleware.GetOwnerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ledgerID := c.Param("id")
	hard := c.Query("hard") == "true"

	err := h.ledgerService.DeleteLedger(c.Request.Context(), owner, ledgerID, hard)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete ledger", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ledgerHandler) getLedgerStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	owner, ok := middleware.GetOwnerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ledgerID := c.Param("id")

	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := dto.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := dto.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		to = &t
	}

	lines, err := h.ledgerService.GetLedgerStatement(c.Request.Context(), owner, ledgerID, from, to)
	if err != nil {
		logger.Error("Failed to build statement", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementLineResponses(lines))
}
