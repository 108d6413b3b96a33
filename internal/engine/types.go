package engine

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"    // 进行中
	ProjectStatusFunded    ProjectStatus = "funded"    // 已达标
	ProjectStatusCompleted ProjectStatus = "completed" // 已完成（资金已提取）
)

// Project 众筹项目
type Project struct {
	ID             uint64        `json:"id"`
	Owner          string        `json:"owner"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	FundingGoal    uint64        `json:"funding_goal"`
	CurrentFunding uint64        `json:"current_funding"`
	Status         ProjectStatus `json:"status"`
	InvestorCount  uint64        `json:"investor_count"`
	CreatedAt      uint64        `json:"created_at"` // 创建时的区块高度
	Deadline       uint64        `json:"deadline"`   // 截止区块高度
}

// InvestorRecord 投资人记录
type InvestorRecord struct {
	Investments   []uint64 `json:"investments"`    // 投资过的项目ID序列，重复投资会重复记录
	TotalInvested uint64   `json:"total_invested"` // 累计净投资额（扣除手续费后）
}

// Pledge 单个投资人对单个项目的投资记录
type Pledge struct {
	Amount    uint64 `json:"amount"`    // 当前持有的净投资额，退款后置0
	Timestamp uint64 `json:"timestamp"` // 最近一次投资时的区块高度
}

// pledgeKey (项目, 投资人) 维度的唯一键
type pledgeKey struct {
	projectID uint64
	investor  string
}

// Ledger 账本适配器，由外部账户系统实现
type Ledger interface {
	// Balance 查询账户余额
	Balance(account string) (uint64, error)
	// Debit 扣减账户余额，余额不足时返回 ErrInsufficientFunds
	Debit(account string, amount uint64) error
	// Credit 增加账户余额
	Credit(account string, amount uint64) error
}

// Clock 区块高度时钟，由外部出块驱动，只读
type Clock interface {
	CurrentHeight() uint64
}
