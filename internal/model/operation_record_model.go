package model

import (
	"time"
)

// 操作类型
const (
	OpTypeInvest   = "invest"
	OpTypeWithdraw = "withdraw"
	OpTypeRefund   = "refund"
)

// OperationRecordModel 资金操作流水模型
type OperationRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 操作信息
	OpType    string `json:"op_type" gorm:"not null;index"`
	ProjectId uint64 `json:"project_id" gorm:"not null;index"`
	Address   string `json:"address" gorm:"not null;index"`

	// 金额信息，投资时 gross = fee + net，提取/退款时只有 net
	GrossAmount uint64 `json:"gross_amount"`
	FeeAmount   uint64 `json:"fee_amount"`
	NetAmount   uint64 `json:"net_amount" gorm:"not null"`

	// 操作发生时的区块高度
	BlockHeight uint64 `json:"block_height"`
}

// TableName 自定义表名
func (OperationRecordModel) TableName() string {
	return "operation_record"
}
