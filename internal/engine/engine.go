package engine

import (
	"sync"

	"github.com/henryadie/EduVest-Protocol/internal/logger"
)

// maxFeePercent 手续费百分比上限
const maxFeePercent = 10

// Engine 众筹引擎，持有全部项目/投资人状态
//
// 所有变更操作串行执行：单把互斥锁覆盖整个操作，
// 校验全部通过后才触发账本划转，外部观察不到部分生效的中间态。
type Engine struct {
	mu sync.Mutex

	ledger Ledger
	clock  Clock

	admin      string
	feePercent uint64

	projects  map[uint64]*Project
	investors map[string]*InvestorRecord
	pledges   map[pledgeKey]*Pledge

	// 已创建项目总数，同时是最近分配的项目ID
	projectCount uint64
}

// New 创建众筹引擎
func New(ledger Ledger, clock Clock, admin string, feePercent uint64) *Engine {
	if feePercent > maxFeePercent {
		feePercent = maxFeePercent
	}
	return &Engine{
		ledger:     ledger,
		clock:      clock,
		admin:      admin,
		feePercent: feePercent,
		projects:   make(map[uint64]*Project),
		investors:  make(map[string]*InvestorRecord),
		pledges:    make(map[pledgeKey]*Pledge),
	}
}

// SetAdmin 更换管理员，仅当前管理员可调用
func (e *Engine) SetAdmin(newAdmin, caller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.admin {
		return ErrUnauthorized
	}

	e.admin = newAdmin
	logger.Info("Admin changed to %s", newAdmin)
	return nil
}

// SetPlatformFee 设置平台手续费百分比（0-10），仅管理员可调用
//
// 只影响之后的投资，已完成投资的手续费不会重算。
func (e *Engine) SetPlatformFee(newFee uint64, caller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.admin {
		return ErrUnauthorized
	}
	if newFee > maxFeePercent {
		return ErrInvalidAmount
	}

	e.feePercent = newFee
	logger.Info("Platform fee set to %d%%", newFee)
	return nil
}

// CreateProject 创建众筹项目，返回新项目ID
func (e *Engine) CreateProject(title, description string, fundingGoal, deadline uint64, caller string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if fundingGoal == 0 {
		return 0, ErrInvalidAmount
	}

	height := e.clock.CurrentHeight()
	if deadline <= height {
		return 0, ErrDeadlinePassed
	}

	projectID := e.projectCount + 1
	e.projects[projectID] = &Project{
		ID:          projectID,
		Owner:       caller,
		Title:       title,
		Description: description,
		FundingGoal: fundingGoal,
		Status:      ProjectStatusActive,
		CreatedAt:   height,
		Deadline:    deadline,
	}
	e.projectCount = projectID

	logger.Info("Project %d created by %s, goal %d, deadline %d", projectID, caller, fundingGoal, deadline)
	return projectID, nil
}

// InvestInProject 投资项目，返回入账的净投资额
//
// 投资人账户扣减全额 amount，管理员账户收取手续费，
// 项目资金池只累计净额。达到目标金额时项目转为 funded。
func (e *Engine) InvestInProject(projectID, amount uint64, caller string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	project, ok := e.projects[projectID]
	if !ok {
		return 0, ErrProjectNotFound
	}
	if amount == 0 {
		return 0, ErrInvalidAmount
	}
	if project.Status != ProjectStatusActive {
		return 0, ErrProjectClosed
	}

	height := e.clock.CurrentHeight()
	if height > project.Deadline {
		return 0, ErrDeadlinePassed
	}

	balance, err := e.ledger.Balance(caller)
	if err != nil {
		return 0, err
	}
	if balance < amount {
		return 0, ErrInsufficientFunds
	}

	fee := amount * e.feePercent / 100
	net := amount - fee

	if err := e.ledger.Debit(caller, amount); err != nil {
		return 0, err
	}
	if fee > 0 {
		if err := e.ledger.Credit(e.admin, fee); err != nil {
			// 手续费入账失败时回退扣款，保证操作原子性
			if rbErr := e.ledger.Credit(caller, amount); rbErr != nil {
				logger.Error("Failed to roll back debit for %s: %v", caller, rbErr)
			}
			return 0, err
		}
	}

	project.CurrentFunding += net
	project.InvestorCount++
	if project.CurrentFunding >= project.FundingGoal {
		project.Status = ProjectStatusFunded
		logger.Info("Project %d reached funding goal, current funding %d", projectID, project.CurrentFunding)
	}

	investor, ok := e.investors[caller]
	if !ok {
		investor = &InvestorRecord{}
		e.investors[caller] = investor
	}
	investor.Investments = append(investor.Investments, projectID)
	investor.TotalInvested += net

	// 同一投资人重复投资同一项目时覆盖记录，不做累加
	e.pledges[pledgeKey{projectID: projectID, investor: caller}] = &Pledge{
		Amount:    net,
		Timestamp: height,
	}

	return net, nil
}

// WithdrawFunds 项目方提取资金池，返回提取金额
//
// 项目达标、或截止后仍有资金时可提取；提取后项目转为 completed。
func (e *Engine) WithdrawFunds(projectID uint64, caller string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	project, ok := e.projects[projectID]
	if !ok {
		return 0, ErrProjectNotFound
	}
	if caller != project.Owner {
		return 0, ErrUnauthorized
	}
	if project.Status != ProjectStatusFunded && e.clock.CurrentHeight() <= project.Deadline {
		return 0, ErrProjectClosed
	}
	if project.CurrentFunding == 0 {
		return 0, ErrInsufficientFunds
	}

	amount := project.CurrentFunding
	if err := e.ledger.Credit(caller, amount); err != nil {
		return 0, err
	}

	project.CurrentFunding = 0
	project.Status = ProjectStatusCompleted

	logger.Info("Project %d funds withdrawn by owner %s, amount %d", projectID, caller, amount)
	return amount, nil
}

// ClaimRefund 投资人申领退款，返回退款金额
//
// 仅项目过了截止高度且仍为 active（未达标）时可退；
// 退款后投资记录金额清零但保留，防止重复退款。
func (e *Engine) ClaimRefund(projectID uint64, caller string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	project, ok := e.projects[projectID]
	if !ok {
		return 0, ErrProjectNotFound
	}

	pledge, ok := e.pledges[pledgeKey{projectID: projectID, investor: caller}]
	if !ok {
		return 0, ErrUnauthorized
	}
	if project.Status != ProjectStatusActive || e.clock.CurrentHeight() <= project.Deadline {
		return 0, ErrProjectClosed
	}
	if pledge.Amount == 0 {
		return 0, ErrInsufficientFunds
	}

	amount := pledge.Amount
	if err := e.ledger.Credit(caller, amount); err != nil {
		return 0, err
	}
	pledge.Amount = 0

	logger.Info("Refund of %d claimed by %s for project %d", amount, caller, projectID)
	return amount, nil
}

// ListProjects 查询所有项目，按项目ID升序返回
func (e *Engine) ListProjects() []Project {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Project, 0, e.projectCount)
	for id := uint64(1); id <= e.projectCount; id++ {
		if project, ok := e.projects[id]; ok {
			out = append(out, *project)
		}
	}
	return out
}

// GetProject 查询项目详情
func (e *Engine) GetProject(projectID uint64) (Project, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	project, ok := e.projects[projectID]
	if !ok {
		return Project{}, false
	}
	return *project, true
}

// GetInvestorData 查询投资人记录
func (e *Engine) GetInvestorData(investor string) (InvestorRecord, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	record, ok := e.investors[investor]
	if !ok {
		return InvestorRecord{}, false
	}
	out := InvestorRecord{
		Investments:   append([]uint64(nil), record.Investments...),
		TotalInvested: record.TotalInvested,
	}
	return out, true
}

// GetInvestmentInProject 查询投资人在某项目的投资记录
func (e *Engine) GetInvestmentInProject(projectID uint64, investor string) (Pledge, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pledge, ok := e.pledges[pledgeKey{projectID: projectID, investor: investor}]
	if !ok {
		return Pledge{}, false
	}
	return *pledge, true
}

// GetPlatformFee 查询当前手续费百分比
func (e *Engine) GetPlatformFee() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.feePercent
}

// GetAdmin 查询当前管理员地址
func (e *Engine) GetAdmin() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.admin
}

// GetProjectCount 查询已创建项目总数
func (e *Engine) GetProjectCount() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.projectCount
}

// GetCurrentBlockHeight 查询当前区块高度
func (e *Engine) GetCurrentBlockHeight() uint64 {
	return e.clock.CurrentHeight()
}
