package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BerniceZTT/bms_end/models"
)

func TestComputeFinanceSummary(t *testing.T) {
	projects := []models.Project{
		{
			Status:            models.ProjectStatusActive,
			TotalValue:        1164.00,
			AdvanceReceived:   500.00,
			TotalPoCost:       970.00,
			PaidToPos:         400.00,
			PendingPoPayments: 570.00,
		},
		{
			Status:            models.ProjectStatusCompleted,
			TotalValue:        2000.00,
			AdvanceReceived:   2000.00,
			TotalPoCost:       1200.00,
			PaidToPos:         1200.00,
			PendingPoPayments: 0,
		},
	}
	unlinked := []models.PurchaseOrder{
		{OrderNo: "PO-00009", TotalAmount: 300.00, PaidAmount: 150.00},
	}

	summary := ComputeFinanceSummary(projects, unlinked)

	assert.Equal(t, 2500.00, summary.TotalRevenue)
	assert.Equal(t, 1600.00, summary.TotalExpenses)
	assert.Equal(t, 900.00, summary.TotalProfit)
	assert.Equal(t, 570.00, summary.PendingPayments)

	// 独立采购单支出单独汇总，不影响项目口径的利润
	assert.Equal(t, 150.00, summary.UnlinkedPoSpend)
	assert.Equal(t, 1750.00, summary.TotalExpensesAll)

	assert.Equal(t, 1, summary.ActiveProjects)
	assert.Equal(t, 1, summary.CompletedProjects)
}

func TestComputeFinanceSummary_Empty(t *testing.T) {
	summary := ComputeFinanceSummary(nil, nil)

	assert.Equal(t, 0.00, summary.TotalRevenue)
	assert.Equal(t, 0.00, summary.TotalExpenses)
	assert.Equal(t, 0.00, summary.TotalProfit)
	assert.Equal(t, 0.00, summary.PendingPayments)
	assert.Equal(t, 0.00, summary.UnlinkedPoSpend)
	assert.Equal(t, 0, summary.ActiveProjects)
	assert.Equal(t, 0, summary.CompletedProjects)
}

func TestComputeFinanceSummary_RoundsCents(t *testing.T) {
	projects := []models.Project{
		{Status: models.ProjectStatusActive, AdvanceReceived: 0.10, PaidToPos: 0.10},
		{Status: models.ProjectStatusActive, AdvanceReceived: 0.20, PaidToPos: 0.20},
	}

	summary := ComputeFinanceSummary(projects, nil)

	assert.Equal(t, 0.30, summary.TotalRevenue)
	assert.Equal(t, 0.30, summary.TotalExpenses)
	assert.Equal(t, 0.00, summary.TotalProfit)
}
