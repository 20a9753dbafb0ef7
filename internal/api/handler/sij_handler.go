package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"raja-digital/internal/dto"
	"raja-digital/internal/receipt"
	"raja-digital/internal/service"
	"raja-digital/pkg/response"
)

// SIJHandler permit issuance, receipts and corrections
type SIJHandler struct {
	sijSvc service.SIJService
}

// NewSIJHandler creates a SIJHandler
func NewSIJHandler(sijSvc service.SIJService) *SIJHandler {
	return &SIJHandler{sijSvc: sijSvc}
}

// Price list price of a category for the input form
// GET /api/sij/price?category=
func (h *SIJHandler) Price(c *gin.Context) {
	p, err := h.sijSvc.Price(c.Query("category"))
	if err != nil {
		h.handleSIJError(c, err)
		return
	}
	response.OK(c, p)
}

// CreateSIJ
// POST /api/sij
func (h *SIJHandler) CreateSIJ(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.CreateSIJRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	tx, err := h.sijSvc.Create(c.Request.Context(), sess, &req)
	if err != nil {
		h.handleSIJError(c, err)
		return
	}
	response.Created(c, tx)
}

// ListSIJ
// GET /api/sij?date=&date_from=&date_to=&shift=&search=&include_void=&sort_by=&sort_dir=
func (h *SIJHandler) ListSIJ(c *gin.Context) {
	var req dto.SIJListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}

	txs, err := h.sijSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, txs)
}

// GetSIJ
// GET /api/sij/:id
func (h *SIJHandler) GetSIJ(c *gin.Context) {
	tx, err := h.sijSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSIJError(c, err)
		return
	}
	response.OK(c, tx)
}

// ReceiptHTML printable receipt page, one block per sheet
// GET /api/sij/:id/receipt
func (h *SIJHandler) ReceiptHTML(c *gin.Context) {
	_, r, err := h.sijSvc.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSIJError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(r.HTML))
}

// ReceiptThermal ESC/POS stream for the thermal printer
// GET /api/sij/:id/receipt/thermal
func (h *SIJHandler) ReceiptThermal(c *gin.Context) {
	tx, r, err := h.sijSvc.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSIJError(c, err)
		return
	}
	response.Attachment(c, receipt.FileName(tx.TransactionID), receipt.MIMEThermal, r.Thermal)
}

// VoidSIJ
// PATCH /api/sij/:id/void
func (h *SIJHandler) VoidSIJ(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	if err := h.sijSvc.Void(c.Request.Context(), sess, c.Param("id")); err != nil {
		h.handleSIJError(c, err)
		return
	}
	response.Message(c, "Transaksi di-void")
}

// UpdateSIJ
// PUT /api/sij/:id
func (h *SIJHandler) UpdateSIJ(c *gin.Context) {
	var req dto.UpdateSIJRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	tx, err := h.sijSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleSIJError(c, err)
		return
	}
	response.OKMessage(c, "Transaksi SIJ diperbarui", tx)
}

// DeleteSIJ
// DELETE /api/sij/:id
func (h *SIJHandler) DeleteSIJ(c *gin.Context) {
	if err := h.sijSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleSIJError(c, err)
		return
	}
	response.Message(c, "Transaksi berhasil dihapus")
}

func (h *SIJHandler) handleSIJError(c *gin.Context, err error) {
	if handleValidation(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrSIJNotFound):
		response.NotFound(c, 14001, err.Error())
	case errors.Is(err, service.ErrDriverInactive):
		response.BadRequest(c, 14002, err.Error())
	case errors.Is(err, service.ErrSIJDuplicate):
		response.Conflict(c, 14003, err.Error())
	case errors.Is(err, service.ErrSIJDateFormat), errors.Is(err, service.ErrSIJDateRange):
		response.BadRequest(c, 14004, err.Error())
	case errors.Is(err, service.ErrVoidExpired):
		response.BadRequest(c, 14005, err.Error())
	case errors.Is(err, service.ErrSIJAlreadyVoid):
		response.BadRequest(c, 14006, err.Error())
	case errors.Is(err, service.ErrUnknownCategory):
		response.BadRequest(c, 14007, err.Error())
	case errors.Is(err, service.ErrDriverNotFound):
		response.BadRequest(c, 14008, err.Error())
	case errors.Is(err, service.ErrSIJIDUnavailable):
		response.Error(c, http.StatusServiceUnavailable, 14009, err.Error())
	default:
		response.InternalError(c)
	}
}
