package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"raja-digital/internal/dto"
	"raja-digital/pkg/jwt"
	"raja-digital/pkg/response"
)

// SessionKey gin context key of the authenticated *dto.Session
const SessionKey = "session"

// TokenChecker revoked-token lookup; implemented by *redis.Client
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth verifies the Bearer token and injects the session.
// A nil checker skips the revocation lookup.
func JWTAuth(jwtMgr *jwt.Manager, checker TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, response.CodeUnauthorized, "Token tidak ditemukan")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, response.CodeUnauthorized, "Format header Authorization tidak valid")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Unauthorized(c, response.CodeUnauthorized, "Token tidak valid atau kedaluwarsa")
			c.Abort()
			return
		}

		if checker != nil {
			revoked, err := checker.IsBlacklisted(c.Request.Context(), claims.ID)
			// redis down: fail open, the signature is still verified
			if err == nil && revoked {
				response.Unauthorized(c, response.CodeUnauthorized, "Sesi sudah berakhir, silakan login kembali")
				c.Abort()
				return
			}
		}

		sess := &dto.Session{
			UserID:  claims.UserID,
			Email:   claims.Email,
			Role:    claims.Role,
			Shift:   claims.Shift,
			Name:    claims.Name,
			TokenID: claims.ID,
		}
		if claims.ExpiresAt != nil {
			sess.ExpiresAt = claims.ExpiresAt.Time
		}
		c.Set(SessionKey, sess)

		c.Next()
	}
}

// RoleAuth allows only the listed roles.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(SessionKey)
		sess, ok := v.(*dto.Session)
		if !exists || !ok {
			response.Unauthorized(c, response.CodeUnauthorized, "Belum login")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if sess.Role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, response.CodeForbidden, "Akses ditolak")
		c.Abort()
	}
}
