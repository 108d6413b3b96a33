package chain

import (
	"sync/atomic"

	"github.com/henryadie/EduVest-Protocol/internal/logger"
)

// ManualClock 手动推进的区块高度时钟，用于测试和本地模拟运行
type ManualClock struct {
	height atomic.Uint64
}

// NewManualClock 创建手动时钟
func NewManualClock(height uint64) *ManualClock {
	c := &ManualClock{}
	c.height.Store(height)
	return c
}

// CurrentHeight 查询当前区块高度
func (c *ManualClock) CurrentHeight() uint64 {
	return c.height.Load()
}

// SetHeight 推进区块高度，高度只增不减
func (c *ManualClock) SetHeight(height uint64) {
	for {
		current := c.height.Load()
		if height <= current {
			logger.Warn("Ignoring non-increasing height %d, current %d", height, current)
			return
		}
		if c.height.CompareAndSwap(current, height) {
			return
		}
	}
}

// Advance 区块高度前进 n
func (c *ManualClock) Advance(n uint64) {
	c.height.Add(n)
}
