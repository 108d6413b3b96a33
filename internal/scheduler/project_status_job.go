package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/henryadie/EduVest-Protocol/internal/config"
	"github.com/henryadie/EduVest-Protocol/internal/engine"
	"github.com/henryadie/EduVest-Protocol/internal/logger"
)

// ProjectStatusJob 项目状态巡检任务
//
// 只做统计和告警输出，状态变更全部发生在引擎操作内部。
type ProjectStatusJob struct {
	engine *engine.Engine
	config *config.Config
}

// NewProjectStatusJob 创建项目状态巡检任务
func NewProjectStatusJob(eng *engine.Engine, cfg *config.Config) *ProjectStatusJob {
	return &ProjectStatusJob{
		engine: eng,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ProjectStatusJob) GetName() string {
	return "project_status_reporter"
}

// GetSchedule 获取调度配置
func (j *ProjectStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectStatusJob) Execute() {
	height := j.engine.GetCurrentBlockHeight()
	projects := j.engine.ListProjects()

	var active, funded, completed, refundable int
	for _, p := range projects {
		switch p.Status {
		case engine.ProjectStatusActive:
			active++
			// 过期未达标的项目进入可退款窗口
			if height > p.Deadline {
				refundable++
				logger.Warn("Project %d expired at height %d without reaching goal, funding %d/%d",
					p.ID, p.Deadline, p.CurrentFunding, p.FundingGoal)
			}
		case engine.ProjectStatusFunded:
			funded++
		case engine.ProjectStatusCompleted:
			completed++
		}
	}

	logger.Info("Project status at height %d: %d active (%d refundable), %d funded, %d completed",
		height, active, refundable, funded, completed)
}
