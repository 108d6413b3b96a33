package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/henryadie/EduVest-Protocol/internal/engine"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// EngineErrorResponse 引擎错误响应，按错误类型映射HTTP状态码
func EngineErrorResponse(c *gin.Context, err error) {
	ErrorResponse(c, statusForEngineError(err), err.Error())
}

// statusForEngineError 引擎错误到HTTP状态码的映射
func statusForEngineError(err error) int {
	switch {
	case errors.Is(err, engine.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, engine.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrDeadlinePassed):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrProjectClosed):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// callerAddress 提取上游网关注入的已认证调用方地址
func callerAddress(c *gin.Context) (string, bool) {
	caller := c.GetHeader("X-Caller-Address")
	if caller == "" {
		ErrorResponse(c, http.StatusBadRequest, "缺少调用方地址")
		return "", false
	}
	return caller, true
}
