package model

import (
	"time"
)

// AccountModel 账户余额模型
type AccountModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 账户信息
	Address string `json:"address" gorm:"uniqueIndex;not null"`
	Balance uint64 `json:"balance" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (AccountModel) TableName() string {
	return "account"
}
