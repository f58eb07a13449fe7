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
)

// selectionHandler serves the detail view: the box currently selected by the caller.
type selectionHandler struct {
	ledger    portssvc.BoxLedgerSvcFacade
	selection portssvc.SelectionSvc
}

// RegisterSelectionRoutes registers the routes of the selection controller.
// The session is the authenticated user id.
func RegisterSelectionRoutes(rg *gin.RouterGroup, ledger portssvc.BoxLedgerSvcFacade, selection portssvc.SelectionSvc) {
	h := &selectionHandler{ledger: ledger, selection: selection}

	sel := rg.Group("/selection")
	{
		sel.GET("", h.getSelection)
		sel.PUT("", h.selectBox)
		sel.POST("/edit", h.editSelected)
	}
}

// getSelection godoc
// @Summary Get the selected box
// @Description Returns NO_SELECTION or HAS_SELECTION with the current version of the selected box.
// @Tags selection
// @Produce  json
// @Success 200 {object} dto.SelectionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /selection [get]
func (h *selectionHandler) getSelection(c *gin.Context) {
	sessionID, ok := sessionFromCtx(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.selectionResponse(sessionID))
}

// selectBox godoc
// @Summary Select a box
// @Description Selects the box with the given id, or clears the selection when boxID is null.
// @Tags selection
// @Accept  json
// @Produce  json
// @Param   selection body dto.SelectBoxRequest true "Box to select"
// @Success 200 {object} dto.SelectionResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Box not found"
// @Security BearerAuth
// @Router /selection [put]
func (h *selectionHandler) selectBox(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromCtx(c)
	if !ok {
		return
	}

	var req dto.SelectBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SelectBox", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if req.BoxID == nil {
		h.selection.Select(sessionID, nil)
		c.JSON(http.StatusOK, h.selectionResponse(sessionID))
		return
	}

	box, err := h.ledger.GetBox(*req.BoxID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Box not found"})
			return
		}
		logger.Error("Failed to look up box for selection", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to select box"})
		return
	}

	h.selection.Select(sessionID, box)
	c.JSON(http.StatusOK, h.selectionResponse(sessionID))
}

// editSelected godoc
// @Summary Edit the selected box
// @Description Opens the edit flow for the selected box and submits the new fields through the ledger.
// @Tags selection
// @Accept  json
// @Produce  json
// @Param   box body dto.UpdateBoxRequest true "New box fields"
// @Success 200 {object} dto.EditBoxResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "No box selected"
// @Failure 500 {object} dto.UnsyncedMutationResponse "Box edited in memory but not persisted"
// @Security BearerAuth
// @Router /selection/edit [post]
func (h *selectionHandler) editSelected(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromCtx(c)
	if !ok {
		return
	}

	var req dto.UpdateBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditSelected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	selected, ok := h.selection.Selected(sessionID)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": apperrors.ErrNoSelection.Error()})
		return
	}

	handle := h.selection.RequestEdit(selected)
	updated := req.ToDomainBox(handle.Box.ID)
	replaced, err := handle.Edit(c.Request.Context(), updated)
	if err != nil {
		writeMutationError(c, err, updated, h.selection)
		return
	}

	c.JSON(http.StatusOK, dto.EditBoxResponse{Box: dto.ToBoxResponse(updated, h.selection), Replaced: replaced})
}

func (h *selectionHandler) selectionResponse(sessionID string) dto.SelectionResponse {
	box, ok := h.selection.Selected(sessionID)
	if !ok {
		return dto.SelectionResponse{State: string(domain.NoSelection)}
	}
	res := dto.ToBoxResponse(box, h.selection)
	return dto.SelectionResponse{State: string(domain.HasSelection), Box: &res}
}

// sessionFromCtx returns the authenticated user id, aborting with 401 when absent.
func sessionFromCtx(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
