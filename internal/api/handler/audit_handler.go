package handler

import (
	"github.com/gin-gonic/gin"

	"raja-digital/internal/dto"
	"raja-digital/internal/service"
	"raja-digital/pkg/response"
)

// AuditHandler permit/trip reconciliation log
type AuditHandler struct {
	auditSvc service.AuditService
}

// NewAuditHandler creates an AuditHandler
func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

// ListAudit
// GET /api/audit?date=&search=&sort_by=&sort_dir=
func (h *AuditHandler) ListAudit(c *gin.Context) {
	var req dto.AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badParams(c, err)
		return
	}

	logs, err := h.auditSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, logs)
}
