package response

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Shared error codes. Module handlers own their own ranges
// (11xxx auth, 12xxx users, 13xxx drivers, 14xxx SIJ, 15xxx ritase,
// 16xxx export, 17xxx absences, 18xxx reports).
const (
	CodeOK            = 0
	CodeInvalidParams = 10001
	CodeUnauthorized  = 10002
	CodeForbidden     = 10003
	CodeRateLimited   = 10004
	CodeBodyTooLarge  = 10005
	CodeInternal      = 50000
)

// Response envelope {code, message, data}
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// ── success ──

// OK 200
func OK(c *gin.Context, data interface{}) {
	OKMessage(c, "success", data)
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	CreatedMessage(c, "success", data)
}

// OKMessage 200 with a human message
func OKMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: message, Data: data})
}

// CreatedMessage 201 with a human message
func CreatedMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: CodeOK, Message: message, Data: data})
}

// Message 200 with a human message and no data
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: message})
}

// Attachment raw download (exports, thermal receipts) with Content-Disposition
func Attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Header("Content-Length", strconv.Itoa(len(body)))
	c.Data(http.StatusOK, contentType, body)
}

// ── errors ──

// Error generic error
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails error with a detail string
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Conflict 409
func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, code int, message string) {
	Error(c, http.StatusTooManyRequests, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "Terjadi kesalahan pada server")
}
