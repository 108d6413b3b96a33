package handler

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	FundingGoal uint64 `json:"funding_goal" binding:"required"`
	Deadline    uint64 `json:"deadline" binding:"required"`
}

// InvestRequest 投资请求
type InvestRequest struct {
	Amount uint64 `json:"amount" binding:"required"`
}

// SetFeeRequest 设置手续费请求
type SetFeeRequest struct {
	FeePercent uint64 `json:"fee_percent"`
}

// SetAdminRequest 更换管理员请求
type SetAdminRequest struct {
	AdminAddress string `json:"admin_address" binding:"required"`
}

// CreateProjectResponse 创建项目响应
type CreateProjectResponse struct {
	ProjectId uint64 `json:"project_id"`
}

// AmountResponse 资金操作响应
type AmountResponse struct {
	ProjectId uint64 `json:"project_id"`
	Amount    uint64 `json:"amount"`
}

// FeeResponse 手续费响应
type FeeResponse struct {
	FeePercent uint64 `json:"fee_percent"`
}

// HeightResponse 区块高度响应
type HeightResponse struct {
	Height uint64 `json:"height"`
}

// ProjectCountResponse 项目总数响应
type ProjectCountResponse struct {
	Count uint64 `json:"count"`
}
