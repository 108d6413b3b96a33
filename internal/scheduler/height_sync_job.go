package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/henryadie/EduVest-Protocol/internal/chain"
	"github.com/henryadie/EduVest-Protocol/internal/config"
	"github.com/henryadie/EduVest-Protocol/internal/logger"
)

// HeightSyncJob 区块高度同步任务
type HeightSyncJob struct {
	clock  *chain.ChainClock
	config *config.Config
}

// NewHeightSyncJob 创建区块高度同步任务
func NewHeightSyncJob(clock *chain.ChainClock, cfg *config.Config) *HeightSyncJob {
	return &HeightSyncJob{
		clock:  clock,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *HeightSyncJob) GetName() string {
	return "height_sync"
}

// GetSchedule 获取调度配置
func (j *HeightSyncJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Chain.PollInterval) * time.Second)
}

// Execute 执行任务
func (j *HeightSyncJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := j.clock.Sync(ctx); err != nil {
		logger.Error("Failed to sync block height: %v", err)
	}
}
