package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"raja-digital/internal/dto"
	"raja-digital/internal/service"
	"raja-digital/pkg/response"
)

// UserHandler operator accounts, superadmin only
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers
// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, users)
}

// CreateUser
// POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.CreatedMessage(c, "User berhasil dibuat", user)
}

// UpdateUser
// PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OKMessage(c, "User berhasil diperbarui", user)
}

// DeleteUser
// DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id"), sess.UserID); err != nil {
		h.handleUserError(c, err)
		return
	}
	response.Message(c, "User berhasil dihapus")
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrUserExists):
		response.Conflict(c, 12002, err.Error())
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, 12003, err.Error())
	case errors.Is(err, service.ErrInvalidShift):
		response.BadRequest(c, 12004, err.Error())
	case errors.Is(err, service.ErrDeleteSelf):
		response.BadRequest(c, 12005, err.Error())
	default:
		response.InternalError(c)
	}
}
