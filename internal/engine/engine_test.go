package engine_test

import (
	"testing"

	"github.com/henryadie/EduVest-Protocol/internal/chain"
	"github.com/henryadie/EduVest-Protocol/internal/engine"
	"github.com/henryadie/EduVest-Protocol/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	admin = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"
	user1 = "ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG"
	user2 = "ST2JHG361ZXG51QTKY2NQCVBPPRRE2KZB1HR05NNC"
)

// newTestEngine 构造带内存账本和手动时钟的引擎，测试账户预置100万余额
func newTestEngine(t *testing.T) (*engine.Engine, *ledger.MemoryLedger, *chain.ManualClock) {
	t.Helper()

	led := ledger.NewMemoryLedger()
	led.SetBalance(admin, 1_000_000)
	led.SetBalance(user1, 1_000_000)
	led.SetBalance(user2, 1_000_000)

	clock := chain.NewManualClock(1)
	return engine.New(led, clock, admin, 2), led, clock
}

// createTestProject 创建标准测试项目：目标10万，截止高度100
func createTestProject(t *testing.T, eng *engine.Engine) uint64 {
	t.Helper()

	id, err := eng.CreateProject("Education Platform", "A platform for online learning", 100_000, 100, user1)
	require.NoError(t, err)
	return id
}

func TestSetAdmin(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	require.NoError(t, eng.SetAdmin(user1, admin))
	assert.Equal(t, user1, eng.GetAdmin())

	// 旧管理员已失去权限
	assert.ErrorIs(t, eng.SetAdmin(user2, admin), engine.ErrUnauthorized)
	assert.Equal(t, user1, eng.GetAdmin())
}

func TestSetPlatformFee(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	require.NoError(t, eng.SetPlatformFee(5, admin))
	assert.Equal(t, uint64(5), eng.GetPlatformFee())

	t.Run("non-admin rejected", func(t *testing.T) {
		assert.ErrorIs(t, eng.SetPlatformFee(3, user1), engine.ErrUnauthorized)
		assert.Equal(t, uint64(5), eng.GetPlatformFee())
	})

	t.Run("fee bounds", func(t *testing.T) {
		assert.ErrorIs(t, eng.SetPlatformFee(11, admin), engine.ErrInvalidAmount)
		assert.Equal(t, uint64(5), eng.GetPlatformFee())

		require.NoError(t, eng.SetPlatformFee(10, admin))
		assert.Equal(t, uint64(10), eng.GetPlatformFee())

		require.NoError(t, eng.SetPlatformFee(0, admin))
		assert.Equal(t, uint64(0), eng.GetPlatformFee())
	})
}

func TestCreateProject(t *testing.T) {
	eng, _, clock := newTestEngine(t)

	id := createTestProject(t, eng)
	assert.Equal(t, uint64(1), id)
	assert.Equal(t, uint64(1), eng.GetProjectCount())

	project, ok := eng.GetProject(id)
	require.True(t, ok)
	assert.Equal(t, "Education Platform", project.Title)
	assert.Equal(t, user1, project.Owner)
	assert.Equal(t, engine.ProjectStatusActive, project.Status)
	assert.Equal(t, uint64(0), project.CurrentFunding)
	assert.Equal(t, uint64(0), project.InvestorCount)
	assert.Equal(t, uint64(1), project.CreatedAt)
	assert.Equal(t, uint64(100), project.Deadline)

	t.Run("ids are sequential", func(t *testing.T) {
		id2, err := eng.CreateProject("Second", "", 50_000, 200, user2)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), id2)
		assert.Equal(t, uint64(2), eng.GetProjectCount())
	})

	t.Run("zero goal rejected", func(t *testing.T) {
		_, err := eng.CreateProject("Bad", "", 0, 200, user1)
		assert.ErrorIs(t, err, engine.ErrInvalidAmount)
	})

	t.Run("past deadline rejected", func(t *testing.T) {
		clock.SetHeight(50)
		_, err := eng.CreateProject("Late", "", 10_000, 40, user1)
		assert.ErrorIs(t, err, engine.ErrDeadlinePassed)

		// 截止高度等于当前高度同样无效
		_, err = eng.CreateProject("Late", "", 10_000, 50, user1)
		assert.ErrorIs(t, err, engine.ErrDeadlinePassed)
	})
}

func TestInvestInProject(t *testing.T) {
	eng, led, _ := newTestEngine(t)
	id := createTestProject(t, eng)

	net, err := eng.InvestInProject(id, 10_000, user2)
	require.NoError(t, err)
	assert.Equal(t, uint64(9_800), net) // 2% 手续费

	project, ok := eng.GetProject(id)
	require.True(t, ok)
	assert.Equal(t, uint64(9_800), project.CurrentFunding)
	assert.Equal(t, uint64(1), project.InvestorCount)
	assert.Equal(t, engine.ProjectStatusActive, project.Status)

	// 投资人扣全额，管理员收手续费
	balance, _ := led.Balance(user2)
	assert.Equal(t, uint64(990_000), balance)
	adminBalance, _ := led.Balance(admin)
	assert.Equal(t, uint64(1_000_200), adminBalance)

	investor, ok := eng.GetInvestorData(user2)
	require.True(t, ok)
	assert.Equal(t, uint64(9_800), investor.TotalInvested)
	assert.Contains(t, investor.Investments, id)

	pledge, ok := eng.GetInvestmentInProject(id, user2)
	require.True(t, ok)
	assert.Equal(t, uint64(9_800), pledge.Amount)
	assert.Equal(t, uint64(1), pledge.Timestamp)
}

func TestInvestFeeConservation(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	id := createTestProject(t, eng)

	// fee + net == amount 对任意手续费档位成立
	for _, fee := range []uint64{0, 1, 2, 3, 7, 10} {
		require.NoError(t, eng.SetPlatformFee(fee, admin))

		amount := uint64(12_345)
		net, err := eng.InvestInProject(id, amount, user2)
		require.NoError(t, err)
		assert.Equal(t, amount, net+amount*fee/100)
	}
}

func TestInvestPreconditions(t *testing.T) {
	eng, led, clock := newTestEngine(t)
	id := createTestProject(t, eng)

	t.Run("project not found", func(t *testing.T) {
		_, err := eng.InvestInProject(99, 1_000, user2)
		assert.ErrorIs(t, err, engine.ErrProjectNotFound)
	})

	t.Run("zero amount", func(t *testing.T) {
		_, err := eng.InvestInProject(id, 0, user2)
		assert.ErrorIs(t, err, engine.ErrInvalidAmount)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		led.SetBalance(user2, 500)
		_, err := eng.InvestInProject(id, 1_000, user2)
		assert.ErrorIs(t, err, engine.ErrInsufficientFunds)

		// 校验失败时不允许有任何状态变更
		project, _ := eng.GetProject(id)
		assert.Equal(t, uint64(0), project.CurrentFunding)
		assert.Equal(t, uint64(0), project.InvestorCount)
		led.SetBalance(user2, 1_000_000)
	})

	t.Run("deadline boundary", func(t *testing.T) {
		// 高度等于截止高度时仍可投资
		clock.SetHeight(100)
		_, err := eng.InvestInProject(id, 1_000, user2)
		assert.NoError(t, err)

		// 超过截止高度一个区块即失败
		clock.SetHeight(101)
		_, err = eng.InvestInProject(id, 1_000, user2)
		assert.ErrorIs(t, err, engine.ErrDeadlinePassed)
	})
}

func TestInvestClosedProject(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	id := createTestProject(t, eng)

	_, err := eng.InvestInProject(id, 110_000, user2)
	require.NoError(t, err)

	_, err = eng.WithdrawFunds(id, user1)
	require.NoError(t, err)

	// completed 项目拒绝投资
	_, err = eng.InvestInProject(id, 1_000, user2)
	assert.ErrorIs(t, err, engine.ErrProjectClosed)
}

func TestFundingGoalTransition(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	id := createTestProject(t, eng)

	// 超额投资使净额越过目标，状态转为 funded
	net, err := eng.InvestInProject(id, 110_000, user2)
	require.NoError(t, err)
	assert.Equal(t, uint64(107_800), net)

	project, _ := eng.GetProject(id)
	assert.Equal(t, engine.ProjectStatusFunded, project.Status)
	assert.Equal(t, uint64(107_800), project.CurrentFunding)
}

func TestRepeatPledgeOverwrites(t *testing.T) {
	eng, _, clock := newTestEngine(t)
	id := createTestProject(t, eng)

	_, err := eng.InvestInProject(id, 10_000, user2)
	require.NoError(t, err)

	clock.SetHeight(5)
	_, err = eng.InvestInProject(id, 20_000, user2)
	require.NoError(t, err)

	// 同一投资人重复投资覆盖记录而非累加
	pledge, ok := eng.GetInvestmentInProject(id, user2)
	require.True(t, ok)
	assert.Equal(t, uint64(19_600), pledge.Amount)
	assert.Equal(t, uint64(5), pledge.Timestamp)

	// 项目资金池和投资人累计额照常累加
	project, _ := eng.GetProject(id)
	assert.Equal(t, uint64(29_400), project.CurrentFunding)
	assert.Equal(t, uint64(2), project.InvestorCount)

	investor, _ := eng.GetInvestorData(user2)
	assert.Equal(t, uint64(29_400), investor.TotalInvested)
	assert.Equal(t, []uint64{id, id}, investor.Investments)
}

func TestFeeSnapshotAtPledgeTime(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	id := createTestProject(t, eng)

	net1, err := eng.InvestInProject(id, 10_000, user2)
	require.NoError(t, err)
	assert.Equal(t, uint64(9_800), net1)

	// 调高手续费只影响之后的投资
	require.NoError(t, eng.SetPlatformFee(10, admin))

	net2, err := eng.InvestInProject(id, 10_000, user1)
	require.NoError(t, err)
	assert.Equal(t, uint64(9_000), net2)

	pledge, _ := eng.GetInvestmentInProject(id, user2)
	assert.Equal(t, uint64(9_800), pledge.Amount)
}

func TestWithdrawFunds(t *testing.T) {
	eng, led, _ := newTestEngine(t)
	id := createTestProject(t, eng)

	_, err := eng.InvestInProject(id, 110_000, user2)
	require.NoError(t, err)

	before, _ := led.Balance(user1)
	amount, err := eng.WithdrawFunds(id, user1)
	require.NoError(t, err)
	assert.Equal(t, uint64(107_800), amount)

	after, _ := led.Balance(user1)
	assert.Equal(t, before+amount, after)

	project, _ := eng.GetProject(id)
	assert.Equal(t, uint64(0), project.CurrentFunding)
	assert.Equal(t, engine.ProjectStatusCompleted, project.Status)

	// 资金池已清空，重复提取失败
	_, err = eng.WithdrawFunds(id, user1)
	assert.ErrorIs(t, err, engine.ErrInsufficientFunds)
}

func TestWithdrawAuthorization(t *testing.T) {
	eng, _, clock := newTestEngine(t)
	id := createTestProject(t, eng)

	_, err := eng.InvestInProject(id, 110_000, user2)
	require.NoError(t, err)

	// 非项目方在任何状态下都拒绝
	_, err = eng.WithdrawFunds(id, user2)
	assert.ErrorIs(t, err, engine.ErrUnauthorized)

	clock.SetHeight(200)
	_, err = eng.WithdrawFunds(id, admin)
	assert.ErrorIs(t, err, engine.ErrUnauthorized)

	_, err = eng.WithdrawFunds(99, user1)
	assert.ErrorIs(t, err, engine.ErrProjectNotFound)
}

func TestWithdrawBeforeFundedRejected(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	id := createTestProject(t, eng)

	_, err := eng.InvestInProject(id, 50_000, user2)
	require.NoError(t, err)

	// 未达标且未过期时不可提取
	_, err = eng.WithdrawFunds(id, user1)
	assert.ErrorIs(t, err, engine.ErrProjectClosed)
}

func TestWithdrawExpiredUnfunded(t *testing.T) {
	eng, _, clock := newTestEngine(t)
	id := createTestProject(t, eng)

	_, err := eng.InvestInProject(id, 50_000, user2)
	require.NoError(t, err)

	// 过期后即使未达标也允许项目方提取已有资金
	clock.SetHeight(101)
	amount, err := eng.WithdrawFunds(id, user1)
	require.NoError(t, err)
	assert.Equal(t, uint64(49_000), amount)

	project, _ := eng.GetProject(id)
	assert.Equal(t, engine.ProjectStatusCompleted, project.Status)

	// 提取后项目已 completed，退款路径被关闭
	_, err = eng.ClaimRefund(id, user2)
	assert.ErrorIs(t, err, engine.ErrProjectClosed)
}

func TestClaimRefund(t *testing.T) {
	eng, led, clock := newTestEngine(t)
	id := createTestProject(t, eng)

	net, err := eng.InvestInProject(id, 50_000, user2)
	require.NoError(t, err)

	clock.SetHeight(101)

	before, _ := led.Balance(user2)
	amount, err := eng.ClaimRefund(id, user2)
	require.NoError(t, err)
	assert.Equal(t, net, amount)

	after, _ := led.Balance(user2)
	assert.Equal(t, before+net, after)

	// 记录保留但金额清零
	pledge, ok := eng.GetInvestmentInProject(id, user2)
	require.True(t, ok)
	assert.Equal(t, uint64(0), pledge.Amount)

	// 重复退款失败
	_, err = eng.ClaimRefund(id, user2)
	assert.ErrorIs(t, err, engine.ErrInsufficientFunds)
}

func TestClaimRefundPreconditions(t *testing.T) {
	eng, _, clock := newTestEngine(t)
	id := createTestProject(t, eng)

	_, err := eng.InvestInProject(id, 50_000, user2)
	require.NoError(t, err)

	t.Run("project not found", func(t *testing.T) {
		_, err := eng.ClaimRefund(99, user2)
		assert.ErrorIs(t, err, engine.ErrProjectNotFound)
	})

	t.Run("non-investor rejected", func(t *testing.T) {
		clock.SetHeight(101)
		_, err := eng.ClaimRefund(id, admin)
		assert.ErrorIs(t, err, engine.ErrUnauthorized)
	})
}

func TestClaimRefundBeforeExpiry(t *testing.T) {
	eng, _, clock := newTestEngine(t)
	id := createTestProject(t, eng)

	_, err := eng.InvestInProject(id, 50_000, user2)
	require.NoError(t, err)

	// 未到期不可退款，高度等于截止高度同样不可
	_, err = eng.ClaimRefund(id, user2)
	assert.ErrorIs(t, err, engine.ErrProjectClosed)

	clock.SetHeight(100)
	_, err = eng.ClaimRefund(id, user2)
	assert.ErrorIs(t, err, engine.ErrProjectClosed)
}

func TestClaimRefundFundedProject(t *testing.T) {
	eng, _, clock := newTestEngine(t)
	id := createTestProject(t, eng)

	_, err := eng.InvestInProject(id, 110_000, user2)
	require.NoError(t, err)

	// 已达标的项目过期后也没有退款路径
	clock.SetHeight(101)
	_, err = eng.ClaimRefund(id, user2)
	assert.ErrorIs(t, err, engine.ErrProjectClosed)
}

// TestFullFundingLifecycle 完整走一遍 创建 → 投资 → 达标 → 提取 流程
func TestFullFundingLifecycle(t *testing.T) {
	eng, led, _ := newTestEngine(t)
	led.SetBalance(user2, 2_000_000)

	id, err := eng.CreateProject("Education Platform", "A platform for online learning", 100_000, 100, user1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	net, err := eng.InvestInProject(id, 10_000, user2)
	require.NoError(t, err)
	assert.Equal(t, uint64(9_800), net)

	project, _ := eng.GetProject(id)
	assert.Equal(t, engine.ProjectStatusActive, project.Status)
	assert.Equal(t, uint64(9_800), project.CurrentFunding)

	net, err = eng.InvestInProject(id, 110_000, user2)
	require.NoError(t, err)
	assert.Equal(t, uint64(107_800), net)

	project, _ = eng.GetProject(id)
	assert.Equal(t, engine.ProjectStatusFunded, project.Status)
	assert.Equal(t, uint64(117_600), project.CurrentFunding)

	amount, err := eng.WithdrawFunds(id, user1)
	require.NoError(t, err)
	assert.Equal(t, uint64(117_600), amount)

	project, _ = eng.GetProject(id)
	assert.Equal(t, engine.ProjectStatusCompleted, project.Status)
	assert.Equal(t, uint64(0), project.CurrentFunding)
}

// TestExpiredRefundLifecycle 完整走一遍 创建 → 投资 → 过期 → 退款 流程
func TestExpiredRefundLifecycle(t *testing.T) {
	eng, _, clock := newTestEngine(t)

	id, err := eng.CreateProject("Education Platform", "A platform for online learning", 100_000, 100, user1)
	require.NoError(t, err)

	net, err := eng.InvestInProject(id, 50_000, user2)
	require.NoError(t, err)

	clock.SetHeight(101)

	amount, err := eng.ClaimRefund(id, user2)
	require.NoError(t, err)
	assert.Equal(t, net, amount)

	_, err = eng.ClaimRefund(id, user2)
	assert.ErrorIs(t, err, engine.ErrInsufficientFunds)

	// 退款不改变项目状态
	project, _ := eng.GetProject(id)
	assert.Equal(t, engine.ProjectStatusActive, project.Status)
}

func TestReadOperations(t *testing.T) {
	eng, _, clock := newTestEngine(t)

	assert.Equal(t, uint64(2), eng.GetPlatformFee())
	assert.Equal(t, uint64(0), eng.GetProjectCount())
	assert.Equal(t, uint64(1), eng.GetCurrentBlockHeight())

	clock.SetHeight(42)
	assert.Equal(t, uint64(42), eng.GetCurrentBlockHeight())

	// 不存在的记录返回明确的未找到标记
	_, ok := eng.GetProject(1)
	assert.False(t, ok)
	_, ok = eng.GetInvestorData(user1)
	assert.False(t, ok)
	_, ok = eng.GetInvestmentInProject(1, user1)
	assert.False(t, ok)

	assert.Empty(t, eng.ListProjects())
}
