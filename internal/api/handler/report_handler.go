package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"raja-digital/internal/dto"
	"raja-digital/internal/service"
	"raja-digital/pkg/response"
)

// ReportHandler weekly attendance and revenue reports
type ReportHandler struct {
	weeklySvc  service.WeeklyReportService
	revenueSvc service.RevenueService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(weeklySvc service.WeeklyReportService, revenueSvc service.RevenueService) *ReportHandler {
	return &ReportHandler{weeklySvc: weeklySvc, revenueSvc: revenueSvc}
}

// WeeklyReport drivers' permits and trips per day plus the fraud summary
// GET /api/weekly-report?start_date=&end_date=&search=
func (h *ReportHandler) WeeklyReport(c *gin.Context) {
	var req dto.WeeklyReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}

	report, err := h.weeklySvc.Report(c.Request.Context(), &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, report)
}

// RevenueReport
// GET /api/revenue-report?period=daily|weekly|monthly&date=
func (h *ReportHandler) RevenueReport(c *gin.Context) {
	var req dto.RevenueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}

	report, err := h.revenueSvc.Report(c.Request.Context(), &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, report)
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	if handleValidation(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrInvalidPeriod):
		response.BadRequest(c, 18001, err.Error())
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 18002, err.Error())
	default:
		response.InternalError(c)
	}
}
