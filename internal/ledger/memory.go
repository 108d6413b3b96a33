package ledger

import (
	"sync"

	"github.com/henryadie/EduVest-Protocol/internal/engine"
)

// MemoryLedger 内存账本，用于测试和本地模拟运行
type MemoryLedger struct {
	mu       sync.RWMutex
	balances map[string]uint64
}

// NewMemoryLedger 创建内存账本
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[string]uint64),
	}
}

// SetBalance 直接设置账户余额，仅用于初始化测试账户
func (l *MemoryLedger) SetBalance(account string, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] = amount
}

// Balance 查询账户余额，不存在的账户余额为0
func (l *MemoryLedger) Balance(account string) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account], nil
}

// Debit 扣减账户余额
func (l *MemoryLedger) Debit(account string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[account] < amount {
		return engine.ErrInsufficientFunds
	}
	l.balances[account] -= amount
	return nil
}

// Credit 增加账户余额
func (l *MemoryLedger) Credit(account string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account] += amount
	return nil
}
