package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/spend_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/spend_tracker_app/internal/dto"
	"github.com/SscSPs/spend_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// parseHandler turns free text into a stored, unconfirmed entry.
type parseHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newParseHandler(es portssvc.EntrySvcFacade) *parseHandler {
	return &parseHandler{entryService: es}
}

// registerParseRoutes registers the parse endpoint behind the given extra middleware (rate limiting).
func registerParseRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade, mw ...gin.HandlerFunc) {
	h := newParseHandler(entryService)
	rg.POST("/parse", append(mw, h.parseText)...)
}

// parseText godoc
// @Summary Parse free text into transactions
// @Description Sends the text to the LLM parser, normalizes the result and stores it as an entry awaiting confirmation.
// @Tags parse
// @Accept json
// @Produce json
// @Param request body dto.ParseRequest true "Text to parse"
// @Success 201 {object} dto.ParseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 502 {object} map[string]string "Parser unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /parse [post]
func (h *parseHandler) parseText(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for parseText", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.entryService.ParseEntry(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to parse entry")
		return
	}

	logger.Info("Entry parsed", slog.String("entry_id", resp.EntryID), slog.Int("transaction_count", len(resp.Transactions)))
	c.JSON(http.StatusCreated, resp)
}
