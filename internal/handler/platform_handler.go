package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/henryadie/EduVest-Protocol/internal/engine"
)

type PlatformHandler struct {
	engine *engine.Engine
}

func NewPlatformHandler(eng *engine.Engine) *PlatformHandler {
	return &PlatformHandler{engine: eng}
}

// GetFee 获取当前平台手续费
func (h *PlatformHandler) GetFee(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "", FeeResponse{FeePercent: h.engine.GetPlatformFee()})
}

// SetFee 设置平台手续费，仅管理员可调用
func (h *PlatformHandler) SetFee(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req SetFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engine.SetPlatformFee(req.FeePercent, caller); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "手续费设置成功", FeeResponse{FeePercent: req.FeePercent})
}

// SetAdmin 更换管理员，仅当前管理员可调用
func (h *PlatformHandler) SetAdmin(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engine.SetAdmin(req.AdminAddress, caller); err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "管理员更换成功", gin.H{"admin_address": req.AdminAddress})
}

// GetInvestor 获取投资人记录
func (h *PlatformHandler) GetInvestor(c *gin.Context) {
	address := c.Param("address")
	record, found := h.engine.GetInvestorData(address)
	if !found {
		ErrorResponse(c, http.StatusNotFound, "投资人不存在")
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"investor": record})
}

// GetProjectCount 获取已创建项目总数
func (h *PlatformHandler) GetProjectCount(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "", ProjectCountResponse{Count: h.engine.GetProjectCount()})
}

// GetHeight 获取当前区块高度
func (h *PlatformHandler) GetHeight(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "", HeightResponse{Height: h.engine.GetCurrentBlockHeight()})
}
