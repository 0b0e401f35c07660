package handlers

import (
	"net/http"

	"sdtech_backend/internal/services"
	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
	statsService  services.StatisticsService
}

func NewReportHandler(rs services.ReportService, ss services.StatisticsService) *ReportHandler {
	return &ReportHandler{reportService: rs, statsService: ss}
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	reports, err := h.reportService.GetReports(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetReports: Error from reportService.GetReports")
		utils.RespondInternalError(c, "Failed to fetch reports.", err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) GetReportByID(c *gin.Context) {
	id := c.Param("id")
	report, err := h.reportService.GetReportByID(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "GetReportByID: Error for ID "+id)
		respondServiceError(c, err, services.ErrReportNotFound, "Report not found.", "Failed to fetch report.")
		return
	}
	c.JSON(http.StatusOK, report)
}

// CreateReport generates and stores a snapshot.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req services.CreateReportRequest
	if !bindJSON(c, &req, "CreateReport") {
		return
	}
	report, err := h.reportService.CreateReport(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateReport: Error from reportService.CreateReport")
		respondServiceError(c, err, nil, "", "Failed to create report.")
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.reportService.DeleteReport(c.Request.Context(), id); err != nil {
		utils.LogError(err, "DeleteReport: Error for ID "+id)
		respondServiceError(c, err, services.ErrReportNotFound, "Report not found to delete.", "Failed to delete report.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// GetDashboardStats serves the dashboard counters.
func (h *ReportHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.statsService.GetDashboardStats(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetDashboardStats: Error from statsService.GetDashboardStats")
		utils.RespondInternalError(c, "Failed to fetch dashboard statistics.", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
