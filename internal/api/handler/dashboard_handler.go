package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"raja-digital/internal/service"
	"raja-digital/pkg/response"
)

// DashboardHandler polling dashboards
type DashboardHandler struct {
	dashSvc service.DashboardService
}

// NewDashboardHandler creates a DashboardHandler
func NewDashboardHandler(dashSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashSvc: dashSvc}
}

// Dashboard variant chosen by the caller's role
// GET /api/dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	d, err := h.dashSvc.Resolve(c.Request.Context(), sess)
	if err != nil {
		if errors.Is(err, service.ErrNoDashboard) {
			response.Forbidden(c, response.CodeForbidden, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, d)
}

// Admin counter view for the caller's shift
// GET /api/dashboard/admin
func (h *DashboardHandler) Admin(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	d, err := h.dashSvc.Admin(c.Request.Context(), sess)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, d)
}

// SuperAdmin
// GET /api/dashboard/superadmin
func (h *DashboardHandler) SuperAdmin(c *gin.Context) {
	d, err := h.dashSvc.SuperAdmin(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, d)
}
