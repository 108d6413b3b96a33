package ledger

import (
	"errors"
	"fmt"

	"github.com/henryadie/EduVest-Protocol/internal/engine"
	"github.com/henryadie/EduVest-Protocol/internal/model"
	"gorm.io/gorm"
)

// StoreLedger 数据库账本，余额持久化在 account 表
type StoreLedger struct {
	db *gorm.DB
}

// NewStoreLedger 创建数据库账本
func NewStoreLedger(db *gorm.DB) *StoreLedger {
	return &StoreLedger{db: db}
}

// Balance 查询账户余额，不存在的账户余额为0
func (l *StoreLedger) Balance(account string) (uint64, error) {
	var record model.AccountModel
	err := l.db.Where("address = ?", account).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("查询账户余额失败: %w", err)
	}
	return record.Balance, nil
}

// Debit 扣减账户余额
//
// 扣减条件下推到SQL层，余额不足时不会产生任何写入。
func (l *StoreLedger) Debit(account string, amount uint64) error {
	result := l.db.Model(&model.AccountModel{}).
		Where("address = ? AND balance >= ?", account, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("扣减账户余额失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return engine.ErrInsufficientFunds
	}
	return nil
}

// Credit 增加账户余额，账户不存在时先创建
func (l *StoreLedger) Credit(account string, amount uint64) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		record := model.AccountModel{Address: account}
		if err := tx.Where("address = ?", account).FirstOrCreate(&record).Error; err != nil {
			return fmt.Errorf("创建账户失败: %w", err)
		}

		result := tx.Model(&model.AccountModel{}).
			Where("address = ?", account).
			UpdateColumn("balance", gorm.Expr("balance + ?", amount))
		if result.Error != nil {
			return fmt.Errorf("增加账户余额失败: %w", result.Error)
		}
		return nil
	})
}
