package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/class_fund_app/internal/apperrors"
	"github.com/SscSPs/class_fund_app/internal/core/domain"
	portssvc "github.com/SscSPs/class_fund_app/internal/core/ports/services"
	"github.com/SscSPs/class_fund_app/internal/dto"
	"github.com/SscSPs/class_fund_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// boxHandler handles HTTP requests related to boxes.
type boxHandler struct {
	ledger    portssvc.BoxLedgerSvcFacade
	formatter dto.AmountFormatter
}

// newBoxHandler creates a new boxHandler.
func newBoxHandler(ledger portssvc.BoxLedgerSvcFacade, formatter dto.AmountFormatter) *boxHandler {
	return &boxHandler{
		ledger:    ledger,
		formatter: formatter,
	}
}

// RegisterBoxRoutes registers routes related to boxes.
func RegisterBoxRoutes(rg *gin.RouterGroup, ledger portssvc.BoxLedgerSvcFacade, selection portssvc.SelectionSvc) {
	h := newBoxHandler(ledger, selection)

	boxes := rg.Group("/boxes")
	{
		boxes.GET("", h.listBoxes)
		boxes.POST("", h.createBox)
		boxes.GET("/:boxID", h.getBox)
		boxes.PUT("/:boxID", h.updateBox)
	}
	rg.GET("/sync", h.getSyncStatus)
}

// listBoxes godoc
// @Summary List boxes
// @Description Lists all boxes in insertion order. Returns 503 while the collection is still loading.
// @Tags boxes
// @Produce  json
// @Success 200 {array} dto.BoxResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Boxes are still loading"
// @Security BearerAuth
// @Router /boxes [get]
func (h *boxHandler) listBoxes(c *gin.Context) {
	if !h.requireLoaded(c) {
		return
	}
	c.JSON(http.StatusOK, dto.ToListBoxResponse(h.ledger.GetAll(), h.formatter))
}

// getBox godoc
// @Summary Get a box by ID
// @Tags boxes
// @Produce  json
// @Param   boxID path string true "Box ID"
// @Success 200 {object} dto.BoxResponse
// @Failure 404 {object} map[string]string "Box not found"
// @Failure 503 {object} map[string]string "Boxes are still loading"
// @Security BearerAuth
// @Router /boxes/{boxID} [get]
func (h *boxHandler) getBox(c *gin.Context) {
	if !h.requireLoaded(c) {
		return
	}
	box, err := h.ledger.GetBox(c.Param("boxID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Box not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToBoxResponse(*box, h.formatter))
}

// createBox godoc
// @Summary Create a new box
// @Description Appends a new box to the collection and persists it. An id is generated when omitted.
// @Tags boxes
// @Accept  json
// @Produce  json
// @Param   box body dto.CreateBoxRequest true "Box details"
// @Success 201 {object} dto.BoxResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "A box with this id already exists"
// @Failure 500 {object} dto.UnsyncedMutationResponse "Box kept in memory but not persisted"
// @Failure 503 {object} map[string]string "Boxes are still loading"
// @Security BearerAuth
// @Router /boxes [post]
func (h *boxHandler) createBox(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBox", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	box := req.ToDomainBox()
	if box.ID == "" {
		box.ID = uuid.NewString()
	}

	logger.Info("Received request to create box", slog.String("box_id", box.ID), slog.String("box_name", box.Name))
	if err := h.ledger.AddBox(c.Request.Context(), box); err != nil {
		writeMutationError(c, err, box, h.formatter)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoxResponse(box, h.formatter))
}

// updateBox godoc
// @Summary Edit a box
// @Description Replaces the box with this id in place and persists the collection. An unknown id leaves the collection unchanged and reports replaced=false.
// @Tags boxes
// @Accept  json
// @Produce  json
// @Param   boxID path string true "Box ID"
// @Param   box body dto.UpdateBoxRequest true "New box fields"
// @Success 200 {object} dto.EditBoxResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} dto.UnsyncedMutationResponse "Box edited in memory but not persisted"
// @Failure 503 {object} map[string]string "Boxes are still loading"
// @Security BearerAuth
// @Router /boxes/{boxID} [put]
func (h *boxHandler) updateBox(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBox", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	box := req.ToDomainBox(c.Param("boxID"))
	replaced, err := h.ledger.EditBox(c.Request.Context(), box)
	if err != nil {
		writeMutationError(c, err, box, h.formatter)
		return
	}

	c.JSON(http.StatusOK, dto.EditBoxResponse{Box: dto.ToBoxResponse(box, h.formatter), Replaced: replaced})
}

// getSyncStatus godoc
// @Summary Storage sync diagnostics
// @Description Reports whether a save is in flight and whether the last storage operation failed.
// @Tags boxes
// @Produce  json
// @Success 200 {object} dto.SyncStatusResponse
// @Security BearerAuth
// @Router /sync [get]
func (h *boxHandler) getSyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToSyncStatusResponse(h.ledger.SyncStatus()))
}

func (h *boxHandler) requireLoaded(c *gin.Context) bool {
	if h.ledger.IsLoaded() {
		return true
	}
	c.Header("Retry-After", "1")
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Boxes are still loading"})
	return false
}

// writeMutationError maps an AddBox/EditBox error to a response.
func writeMutationError(c *gin.Context, err error, box domain.Box, formatter dto.AmountFormatter) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error on box mutation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotReady):
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Boxes are still loading"})
	case errors.Is(err, apperrors.ErrStore):
		logger.Error("Box change not persisted", slog.String("box_id", box.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.UnsyncedMutationResponse{
			Error:   "Failed to save boxes",
			Warning: "The change is applied but may not survive a restart",
			Box:     dto.ToBoxResponse(box, formatter),
		})
	default:
		logger.Error("Failed to apply box change", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply box change"})
	}
}
