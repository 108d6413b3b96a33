package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/henryadie/EduVest-Protocol/internal/engine"
	"github.com/henryadie/EduVest-Protocol/internal/model"
	"github.com/henryadie/EduVest-Protocol/internal/task"
)

type ProjectHandler struct {
	engine   *engine.Engine
	recorder *task.Recorder
}

func NewProjectHandler(eng *engine.Engine, recorder *task.Recorder) *ProjectHandler {
	return &ProjectHandler{
		engine:   eng,
		recorder: recorder,
	}
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	projectID, err := h.engine.CreateProject(req.Title, req.Description, req.FundingGoal, req.Deadline, caller)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", CreateProjectResponse{ProjectId: projectID})
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects := h.engine.ListProjects()
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"projects": projects,
		"total":    len(projects),
	})
}

// GetProject 获取单个项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	project, found := h.engine.GetProject(projectID)
	if !found {
		ErrorResponse(c, http.StatusNotFound, "项目不存在")
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"project": project})
}

// Invest 投资项目
func (h *ProjectHandler) Invest(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	var req InvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	net, err := h.engine.InvestInProject(projectID, req.Amount, caller)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	h.recorder.Record(model.OperationRecordModel{
		OpType:      model.OpTypeInvest,
		ProjectId:   projectID,
		Address:     caller,
		GrossAmount: req.Amount,
		FeeAmount:   req.Amount - net,
		NetAmount:   net,
		BlockHeight: h.engine.GetCurrentBlockHeight(),
	})

	SuccessResponse(c, http.StatusOK, "投资成功", AmountResponse{ProjectId: projectID, Amount: net})
}

// Withdraw 项目方提取资金
func (h *ProjectHandler) Withdraw(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	amount, err := h.engine.WithdrawFunds(projectID, caller)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	h.recorder.Record(model.OperationRecordModel{
		OpType:      model.OpTypeWithdraw,
		ProjectId:   projectID,
		Address:     caller,
		NetAmount:   amount,
		BlockHeight: h.engine.GetCurrentBlockHeight(),
	})

	SuccessResponse(c, http.StatusOK, "资金提取成功", AmountResponse{ProjectId: projectID, Amount: amount})
}

// Refund 投资人申领退款
func (h *ProjectHandler) Refund(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	amount, err := h.engine.ClaimRefund(projectID, caller)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	h.recorder.Record(model.OperationRecordModel{
		OpType:      model.OpTypeRefund,
		ProjectId:   projectID,
		Address:     caller,
		NetAmount:   amount,
		BlockHeight: h.engine.GetCurrentBlockHeight(),
	})

	SuccessResponse(c, http.StatusOK, "退款成功", AmountResponse{ProjectId: projectID, Amount: amount})
}

// GetInvestment 获取投资人在某项目的投资记录
func (h *ProjectHandler) GetInvestment(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	address := c.Param("address")
	pledge, found := h.engine.GetInvestmentInProject(projectID, address)
	if !found {
		ErrorResponse(c, http.StatusNotFound, "投资记录不存在")
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"investment": pledge})
}

// projectIDParam 解析路径中的项目ID
func projectIDParam(c *gin.Context) (uint64, bool) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return 0, false
	}
	return projectID, true
}
