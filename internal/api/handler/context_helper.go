package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"raja-digital/internal/api/middleware"
	"raja-digital/internal/dto"
	pkgerrors "raja-digital/pkg/errors"
	"raja-digital/pkg/response"
)

// MustGetSession extracts the session injected by JWTAuth.
// On false a 401 has already been written and the caller should return.
func MustGetSession(c *gin.Context) (*dto.Session, bool) {
	v, exists := c.Get(middleware.SessionKey)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "Belum login")
		return nil, false
	}
	sess, ok := v.(*dto.Session)
	if !ok || sess == nil || sess.UserID == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "Belum login")
		return nil, false
	}
	return sess, true
}

// badParams 400 for a request that failed binding
func badParams(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "Parameter tidak valid", err.Error())
}

// handleValidation writes a 400 when err is a validation error.
func handleValidation(c *gin.Context, err error) bool {
	if !pkgerrors.IsValidation(err) {
		return false
	}
	response.BadRequest(c, response.CodeInvalidParams, err.Error())
	return true
}
