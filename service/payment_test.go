package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerniceZTT/bms_end/models"
)

func pendingPurchaseOrder(total float64) *models.PurchaseOrder {
	return &models.PurchaseOrder{
		OrderNo:     "PO-00001",
		TotalAmount: total,
		PaidAmount:  0,
		Status:      models.PurchaseOrderStatusPending,
	}
}

func activeProject(totalValue, advance float64) *models.Project {
	return &models.Project{
		ProjectNo:        "PRJ-00001",
		TotalValue:       totalValue,
		AdvanceReceived:  advance,
		BalanceRemaining: totalValue - advance,
		Status:           models.ProjectStatusActive,
	}
}

func TestApplyPurchaseOrderPayment(t *testing.T) {
	now := time.Now()

	t.Run("部分付款保持待付款状态", func(t *testing.T) {
		po := pendingPurchaseOrder(900.00)

		err := ApplyPurchaseOrderPayment(po, 300.00, now)
		require.NoError(t, err)

		assert.Equal(t, 300.00, po.PaidAmount)
		assert.Equal(t, 600.00, po.Outstanding())
		assert.Equal(t, models.PurchaseOrderStatusPending, po.Status)
		assert.Nil(t, po.PaidDate)
	})

	t.Run("付清后结清并记录结清日期", func(t *testing.T) {
		po := pendingPurchaseOrder(900.00)

		require.NoError(t, ApplyPurchaseOrderPayment(po, 400.00, now))
		require.NoError(t, ApplyPurchaseOrderPayment(po, 500.00, now))

		assert.Equal(t, 900.00, po.PaidAmount)
		assert.Equal(t, models.PurchaseOrderStatusSettled, po.Status)
		require.NotNil(t, po.PaidDate)
		assert.Equal(t, now, *po.PaidDate)
	})

	t.Run("超付被拒绝且状态不变", func(t *testing.T) {
		po := pendingPurchaseOrder(900.00)
		require.NoError(t, ApplyPurchaseOrderPayment(po, 300.00, now))

		err := ApplyPurchaseOrderPayment(po, 600.01, now)
		require.Error(t, err)

		// 拒绝后采购单保持原状
		assert.Equal(t, 300.00, po.PaidAmount)
		assert.Equal(t, models.PurchaseOrderStatusPending, po.Status)
		assert.Nil(t, po.PaidDate)
	})

	t.Run("已结清采购单拒绝继续付款", func(t *testing.T) {
		po := pendingPurchaseOrder(100.00)
		require.NoError(t, ApplyPurchaseOrderPayment(po, 100.00, now))

		err := ApplyPurchaseOrderPayment(po, 1.00, now)
		require.Error(t, err)
		assert.Equal(t, 100.00, po.PaidAmount)
	})

	t.Run("非正金额被拒绝", func(t *testing.T) {
		po := pendingPurchaseOrder(100.00)

		for _, amount := range []float64{0, -10} {
			err := ApplyPurchaseOrderPayment(po, amount, now)
			require.Error(t, err)
		}
		assert.Equal(t, 0.00, po.PaidAmount)
	})
}

func TestPropagatePoPaymentToProject(t *testing.T) {
	now := time.Now()
	project := activeProject(1164.00, 500.00)
	project.TotalPoCost = 970.00
	project.PaidToPos = 0
	project.PendingPoPayments = 970.00

	PropagatePoPaymentToProject(project, 400.00, now)

	assert.Equal(t, 400.00, project.PaidToPos)
	assert.Equal(t, 570.00, project.PendingPoPayments)

	PropagatePoPaymentToProject(project, 570.00, now)

	// 不变量：pendingPoPayments + paidToPos == totalPoCost
	assert.Equal(t, 970.00, project.PaidToPos)
	assert.Equal(t, 0.00, project.PendingPoPayments)
	assert.Equal(t, project.TotalPoCost, project.PaidToPos+project.PendingPoPayments)
}

func TestApplyCustomerPayment(t *testing.T) {
	now := time.Now()

	t.Run("部分回款保持进行中", func(t *testing.T) {
		project := activeProject(1164.00, 500.00)

		err := ApplyCustomerPayment(project, 300.00, now)
		require.NoError(t, err)

		assert.Equal(t, 800.00, project.AdvanceReceived)
		assert.Equal(t, 364.00, project.BalanceRemaining)
		assert.Equal(t, models.ProjectStatusActive, project.Status)
		assert.Nil(t, project.CompletedAt)
	})

	t.Run("余额清零后项目完结", func(t *testing.T) {
		project := activeProject(1164.00, 500.00)

		require.NoError(t, ApplyCustomerPayment(project, 664.00, now))

		assert.Equal(t, 0.00, project.BalanceRemaining)
		assert.Equal(t, models.ProjectStatusCompleted, project.Status)
		require.NotNil(t, project.CompletedAt)
		assert.Equal(t, now, *project.CompletedAt)
	})

	t.Run("超付被拒绝且项目保持原状", func(t *testing.T) {
		project := activeProject(1164.00, 500.00)

		err := ApplyCustomerPayment(project, 664.01, now)
		require.Error(t, err)

		assert.Equal(t, 500.00, project.AdvanceReceived)
		assert.Equal(t, 664.00, project.BalanceRemaining)
		assert.Equal(t, models.ProjectStatusActive, project.Status)
	})

	t.Run("已完结项目拒绝继续回款", func(t *testing.T) {
		project := activeProject(1000.00, 0)
		require.NoError(t, ApplyCustomerPayment(project, 1000.00, now))

		err := ApplyCustomerPayment(project, 1.00, now)
		require.Error(t, err)
		assert.Equal(t, 1000.00, project.AdvanceReceived)
	})

	t.Run("非正金额被拒绝", func(t *testing.T) {
		project := activeProject(1000.00, 0)

		for _, amount := range []float64{0, -5} {
			err := ApplyCustomerPayment(project, amount, now)
			require.Error(t, err)
		}
		assert.Equal(t, 0.00, project.AdvanceReceived)
	})
}

// 任意合法付款序列后两条恒等式都成立：
// balanceRemaining + advanceReceived == totalValue
// pendingPoPayments + paidToPos == totalPoCost
func TestPaymentSequenceInvariants(t *testing.T) {
	now := time.Now()
	project := activeProject(1164.00, 500.00)
	project.TotalPoCost = 970.00
	project.PendingPoPayments = 970.00
	po := pendingPurchaseOrder(970.00)

	customerPayments := []float64{100.00, 250.50, 313.50}
	poPayments := []float64{500.00, 470.00}

	for _, amount := range customerPayments {
		require.NoError(t, ApplyCustomerPayment(project, amount, now))
		assert.Equal(t, project.TotalValue, project.AdvanceReceived+project.BalanceRemaining)
	}

	for _, amount := range poPayments {
		require.NoError(t, ApplyPurchaseOrderPayment(po, amount, now))
		PropagatePoPaymentToProject(project, amount, now)
		assert.Equal(t, project.TotalPoCost, project.PaidToPos+project.PendingPoPayments)
		assert.Equal(t, po.TotalAmount, po.PaidAmount+po.Outstanding())
	}

	assert.Equal(t, models.ProjectStatusCompleted, project.Status)
	assert.Equal(t, models.PurchaseOrderStatusSettled, po.Status)
}
