package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"raja-digital/internal/dto"
	"raja-digital/internal/model"
	"raja-digital/internal/service"
	"raja-digital/pkg/response"
)

// DriverHandler driver master data
type DriverHandler struct {
	driverSvc service.DriverService
}

// NewDriverHandler creates a DriverHandler
func NewDriverHandler(driverSvc service.DriverService) *DriverHandler {
	return &DriverHandler{driverSvc: driverSvc}
}

// ListDrivers
// GET /api/drivers?search=&status_filter=&sort_by=&sort_dir=
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	var req dto.DriverListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}

	drivers, err := h.driverSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, drivers)
}

// ListActiveDrivers feeds the SIJ and ritase input forms.
// GET /api/drivers/active
func (h *DriverHandler) ListActiveDrivers(c *gin.Context) {
	drivers, err := h.driverSvc.ListActive(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, drivers)
}

// GetDriver
// GET /api/drivers/:id
func (h *DriverHandler) GetDriver(c *gin.Context) {
	d, err := h.driverSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDriverError(c, err)
		return
	}
	response.OK(c, d)
}

// CreateDriver
// POST /api/drivers
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req dto.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	d, err := h.driverSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleDriverError(c, err)
		return
	}
	response.CreatedMessage(c, "Driver berhasil ditambahkan", d)
}

// UpdateDriver
// PUT /api/drivers/:id
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var req dto.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	d, err := h.driverSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleDriverError(c, err)
		return
	}
	response.OKMessage(c, "Driver diperbarui", d)
}

// SuspendDriver
// PATCH /api/drivers/:id/suspend
func (h *DriverHandler) SuspendDriver(c *gin.Context) {
	if err := h.driverSvc.SetStatus(c.Request.Context(), c.Param("id"), model.DriverSuspend); err != nil {
		h.handleDriverError(c, err)
		return
	}
	response.Message(c, "Driver disuspend")
}

// ActivateDriver
// PATCH /api/drivers/:id/activate
func (h *DriverHandler) ActivateDriver(c *gin.Context) {
	if err := h.driverSvc.SetStatus(c.Request.Context(), c.Param("id"), model.DriverActive); err != nil {
		h.handleDriverError(c, err)
		return
	}
	response.Message(c, "Driver diaktifkan")
}

// DeleteDriver
// DELETE /api/drivers/:id
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	if err := h.driverSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleDriverError(c, err)
		return
	}
	response.Message(c, "Driver berhasil dihapus")
}

func (h *DriverHandler) handleDriverError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDriverNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrDriverExists):
		response.Conflict(c, 13002, err.Error())
	case errors.Is(err, service.ErrInvalidDriverState):
		response.BadRequest(c, 13003, err.Error())
	default:
		response.InternalError(c)
	}
}
