package task

import (
	"github.com/henryadie/EduVest-Protocol/internal/logger"
	"github.com/henryadie/EduVest-Protocol/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Recorder 资金操作流水异步落库
//
// 引擎操作提交后由协程池写入流水表，落库失败只记日志，
// 不影响已完成的资金操作。
type Recorder struct {
	db   *gorm.DB
	pool *ants.Pool
}

// NewRecorder 创建流水记录器，db 为空时记录器为空操作
func NewRecorder(db *gorm.DB, poolSize int) (*Recorder, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Recorder{db: db, pool: pool}, nil
}

// Record 提交一条操作流水
func (r *Recorder) Record(record model.OperationRecordModel) {
	if r.db == nil {
		return
	}

	err := r.pool.Submit(func() {
		if err := r.db.Create(&record).Error; err != nil {
			logger.Error("Failed to persist %s record for project %d: %v", record.OpType, record.ProjectId, err)
		}
	})
	if err != nil {
		logger.Error("Failed to submit %s record for project %d: %v", record.OpType, record.ProjectId, err)
	}
}

// Stop 关闭协程池
func (r *Recorder) Stop() {
	r.pool.Release()
}
