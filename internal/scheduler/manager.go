package scheduler

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/henryadie/EduVest-Protocol/internal/chain"
	"github.com/henryadie/EduVest-Protocol/internal/config"
	"github.com/henryadie/EduVest-Protocol/internal/engine"
	"github.com/henryadie/EduVest-Protocol/internal/logger"
)

// Job 定时任务
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	engine    *engine.Engine
	clock     *chain.ChainClock
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(eng *engine.Engine, clock *chain.ChainClock, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		engine:    eng,
		clock:     clock,
		config:    cfg,
	}
}

// Start 启动任务管理器，clock 为空时跳过高度同步任务
func Start(eng *engine.Engine, clock *chain.ChainClock, cfg *config.Config) *Manager {
	manager := NewManager(eng, clock, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	if m.clock != nil {
		m.registerJob(NewHeightSyncJob(m.clock, m.config))
	}
	m.registerJob(NewProjectStatusJob(m.engine, m.config))
}

// registerJob 注册单个任务
func (m *Manager) registerJob(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
