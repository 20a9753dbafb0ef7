package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"raja-digital/internal/dto"
	"raja-digital/internal/service"
	"raja-digital/pkg/response"
)

// AuthHandler login and session endpoints
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, service.ErrInvalidCredentials.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Me returns the session carried by the token.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	response.OK(c, sess)
}

// Logout revokes the current token.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	if err := h.authSvc.Logout(c.Request.Context(), sess); err != nil {
		response.InternalError(c)
		return
	}
	response.Message(c, "Logout berhasil")
}
