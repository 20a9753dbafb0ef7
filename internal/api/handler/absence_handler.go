package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"raja-digital/internal/dto"
	"raja-digital/internal/service"
	"raja-digital/pkg/response"
)

// AbsenceHandler absence reasons shown in the weekly report
type AbsenceHandler struct {
	absenceSvc service.AbsenceService
}

// NewAbsenceHandler creates an AbsenceHandler
func NewAbsenceHandler(absenceSvc service.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{absenceSvc: absenceSvc}
}

// ListAbsences
// GET /api/absences?start_date=&end_date=
func (h *AbsenceHandler) ListAbsences(c *gin.Context) {
	var req dto.AbsenceRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}

	list, err := h.absenceSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}
	response.OK(c, list)
}

// SetAbsence stores a reason; an empty reason clears it.
// POST /api/absences
func (h *AbsenceHandler) SetAbsence(c *gin.Context) {
	var req dto.AbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	cleared, err := h.absenceSvc.Set(c.Request.Context(), &req)
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}
	if cleared {
		response.Message(c, "Keterangan absen dihapus")
		return
	}
	response.Message(c, "Keterangan absen disimpan")
}

// Reasons fixed list of accepted reasons
// GET /api/absence-reasons
func (h *AbsenceHandler) Reasons(c *gin.Context) {
	response.OK(c, h.absenceSvc.Reasons())
}

func (h *AbsenceHandler) handleAbsenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidReason):
		response.BadRequest(c, 17001, err.Error())
	case errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, 17002, err.Error())
	case errors.Is(err, service.ErrDriverNotFound):
		response.NotFound(c, 17003, err.Error())
	default:
		response.InternalError(c)
	}
}
