package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"raja-digital/internal/dto"
	"raja-digital/internal/export"
	"raja-digital/internal/service"
	"raja-digital/pkg/response"
)

// ExportHandler file downloads. The format comes from the :format path
// segment.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

func (h *ExportHandler) format(c *gin.Context) (export.Format, bool) {
	f, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		response.BadRequest(c, 16001, service.ErrExportFormat.Error())
		return "", false
	}
	return f, true
}

func (h *ExportHandler) send(c *gin.Context, file *service.File, err error) {
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.Attachment(c, file.Name, file.ContentType, file.Data)
}

// Weekly
// GET /api/weekly-report/export/:format?start_date=&end_date=
func (h *ExportHandler) Weekly(c *gin.Context) {
	f, ok := h.format(c)
	if !ok {
		return
	}
	var req dto.WeeklyReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}
	file, err := h.exportSvc.Weekly(c.Request.Context(), req.StartDate, req.EndDate, f)
	h.send(c, file, err)
}

// Drivers
// GET /api/drivers/export/:format
func (h *ExportHandler) Drivers(c *gin.Context) {
	f, ok := h.format(c)
	if !ok {
		return
	}
	file, err := h.exportSvc.Drivers(c.Request.Context(), f)
	h.send(c, file, err)
}

// SIJ
// GET /api/sij/export/:format?date_from=&date_to=
func (h *ExportHandler) SIJ(c *gin.Context) {
	f, ok := h.format(c)
	if !ok {
		return
	}
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}
	file, err := h.exportSvc.SIJ(c.Request.Context(), req, f)
	h.send(c, file, err)
}

// Ritase
// GET /api/ritase/export/:format?date_from=&date_to=
func (h *ExportHandler) Ritase(c *gin.Context) {
	f, ok := h.format(c)
	if !ok {
		return
	}
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}
	file, err := h.exportSvc.Ritase(c.Request.Context(), req, f)
	h.send(c, file, err)
}

// Revenue
// GET /api/revenue-report/export/:format?period=&date=
func (h *ExportHandler) Revenue(c *gin.Context) {
	f, ok := h.format(c)
	if !ok {
		return
	}
	var req dto.RevenueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}
	file, err := h.exportSvc.Revenue(c.Request.Context(), &req, f)
	h.send(c, file, err)
}

// Audit is CSV only.
// GET /api/audit/export?date=
func (h *ExportHandler) Audit(c *gin.Context) {
	var req dto.AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}
	file, err := h.exportSvc.Audit(c.Request.Context(), req.Date)
	h.send(c, file, err)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	if handleValidation(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrExportFormat):
		response.BadRequest(c, 16001, err.Error())
	case errors.Is(err, service.ErrInvalidPeriod), errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 16002, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
