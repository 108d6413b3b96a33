package engine

import "errors"

// 引擎错误类型，每个变更操作失败时返回其中之一
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrDeadlinePassed    = errors.New("deadline passed")
	ErrProjectClosed     = errors.New("project closed")
	ErrProjectNotFound   = errors.New("project not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
