package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/spend_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/spend_tracker_app/internal/dto"
	"github.com/SscSPs/spend_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// entryHandler handles HTTP requests related to entries
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

// newEntryHandler creates a new entryHandler
func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: es}
}

// registerEntryRoutes registers routes related to entries
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("/confirm", h.confirmEntry)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/reject", h.rejectEntry)
	}
}

// entryIDParam validates the :entryID path parameter.
func entryIDParam(c *gin.Context, logger *slog.Logger) (string, bool) {
	entryID := c.Param("entryID")
	if _, err := uuid.Parse(entryID); err != nil {
		logger.Warn("Invalid entry ID in path", slog.String("entry_id", entryID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return "", false
	}
	return entryID, true
}

// confirmEntry godoc
// @Summary Confirm an entry
// @Description Replaces the entry's transactions with the user's confirmed version and marks it confirmed.
// @Tags entries
// @Accept json
// @Produce json
// @Param request body dto.ConfirmEntryRequest true "Confirmed transactions"
// @Success 201 {object} dto.ConfirmEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /entries/confirm [post]
func (h *entryHandler) confirmEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.ConfirmEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for confirmEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.entryService.ConfirmEntry(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to confirm entry")
		return
	}

	logger.Info("Entry confirmed", slog.String("entry_id", req.EntryID))
	c.JSON(http.StatusCreated, resp)
}

// listEntries godoc
// @Summary List entries
// @Description Lists the user's entries, newest first.
// @Tags entries
// @Produce json
// @Param limit query int false "Page size (1-500)" default(200)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get an entry
// @Tags entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid entry ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	entryID, ok := entryIDParam(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.GetEntry(c.Request.Context(), userID, entryID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// rejectEntry godoc
// @Summary Reject an entry
// @Description Marks a parsed entry as rejected. Rejecting twice is a no-op.
// @Tags entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Entry already confirmed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entries/{entryID}/reject [post]
func (h *entryHandler) rejectEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	entryID, ok := entryIDParam(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.RejectEntry(c.Request.Context(), userID, entryID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reject entry")
		return
	}

	logger.Info("Entry rejected", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
