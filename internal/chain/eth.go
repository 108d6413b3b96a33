package chain

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/henryadie/EduVest-Protocol/internal/config"
	"github.com/henryadie/EduVest-Protocol/internal/logger"
)

// ChainClock 链上区块高度时钟
//
// 高度由 Sync 轮询RPC节点更新，缓存最近一次看到的最大高度，
// 即使节点回报更低的头也不会回退。
type ChainClock struct {
	client *ethclient.Client
	height atomic.Uint64
}

// NewChainClock 连接RPC节点并创建链上时钟
func NewChainClock(cfg config.ChainConfig) (*ChainClock, error) {
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain rpc: %w", err)
	}

	c := &ChainClock{client: client}
	if err := c.Sync(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to fetch initial block height: %w", err)
	}
	return c, nil
}

// CurrentHeight 查询当前区块高度
func (c *ChainClock) CurrentHeight() uint64 {
	return c.height.Load()
}

// Sync 拉取最新区块高度并更新缓存
func (c *ChainClock) Sync(ctx context.Context) error {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return err
	}

	latest := header.Number.Uint64()
	for {
		current := c.height.Load()
		if latest <= current {
			if latest < current {
				logger.Warn("Chain head %d behind cached height %d, keeping cache", latest, current)
			}
			return nil
		}
		if c.height.CompareAndSwap(current, latest) {
			logger.Debug("Block height advanced to %d", latest)
			return nil
		}
	}
}

// Close 关闭RPC连接
func (c *ChainClock) Close() {
	c.client.Close()
}
