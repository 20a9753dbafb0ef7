package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"raja-digital/internal/dto"
	"raja-digital/internal/service"
	"raja-digital/pkg/response"
)

// RitaseHandler recorded trips
type RitaseHandler struct {
	ritaseSvc service.RitaseService
}

// NewRitaseHandler creates a RitaseHandler
func NewRitaseHandler(ritaseSvc service.RitaseService) *RitaseHandler {
	return &RitaseHandler{ritaseSvc: ritaseSvc}
}

func parseRitaseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, response.CodeInvalidParams, "ID ritase tidak valid")
		return 0, false
	}
	return id, true
}

// ListRitase
// GET /api/ritase?date_from=&date_to=&search=&sort_by=&sort_dir=
func (h *RitaseHandler) ListRitase(c *gin.Context) {
	var req dto.RitaseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}

	trips, err := h.ritaseSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, trips)
}

// CreateRitase
// POST /api/ritase
func (h *RitaseHandler) CreateRitase(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.CreateRitaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	rt, err := h.ritaseSvc.Create(c.Request.Context(), sess, &req)
	if err != nil {
		h.handleRitaseError(c, err)
		return
	}
	response.CreatedMessage(c, "Ritase berhasil ditambahkan", rt)
}

// UpdateRitase
// PUT /api/ritase/:id
func (h *RitaseHandler) UpdateRitase(c *gin.Context) {
	id, ok := parseRitaseID(c)
	if !ok {
		return
	}

	var req dto.UpdateRitaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	rt, err := h.ritaseSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRitaseError(c, err)
		return
	}
	response.OKMessage(c, "Ritase diperbarui", rt)
}

// DeleteRitase
// DELETE /api/ritase/:id
func (h *RitaseHandler) DeleteRitase(c *gin.Context) {
	id, ok := parseRitaseID(c)
	if !ok {
		return
	}

	if err := h.ritaseSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleRitaseError(c, err)
		return
	}
	response.Message(c, "Ritase berhasil dihapus")
}

func (h *RitaseHandler) handleRitaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRitaseNotFound):
		response.NotFound(c, 15001, err.Error())
	case errors.Is(err, service.ErrDriverNotFound):
		response.BadRequest(c, 15002, err.Error())
	default:
		response.InternalError(c)
	}
}
