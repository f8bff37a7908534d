package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/spend_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/spend_tracker_app/internal/dto"
	"github.com/SscSPs/spend_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// summaryHandler serves the monthly summary report
type summaryHandler struct {
	reportingService portssvc.ReportingService
}

func newSummaryHandler(rs portssvc.ReportingService) *summaryHandler {
	return &summaryHandler{reportingService: rs}
}

func registerSummaryRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newSummaryHandler(reportingService)
	rg.GET("/summary", h.getMonthlySummary)
}

// getMonthlySummary godoc
// @Summary Monthly summary
// @Description Totals inflow and outflow for one calendar month (UTC), broken down by direction and category.
// @Tags summary
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /summary [get]
func (h *summaryHandler) getMonthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month query parameter is required (YYYY-MM)"})
		return
	}

	summary, err := h.reportingService.MonthlySummary(c.Request.Context(), userID, month)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate monthly summary")
		return
	}

	logger.Info("Monthly summary generated", slog.String("month", month), slog.Int("category_rows", len(summary.ByCategory)))
	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(summary))
}
