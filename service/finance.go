package service

import (
	"github.com/BerniceZTT/bms_end/models"
	"github.com/BerniceZTT/bms_end/utils"
)

// ComputeFinanceSummary 财务汇总，纯读侧聚合
// 每次从项目和采购单实时计算，不落库，保证与来源数据不漂移
// 手工创建的独立采购单不影响项目对账，其支出单独汇总在 UnlinkedPoSpend
func ComputeFinanceSummary(projects []models.Project, unlinkedOrders []models.PurchaseOrder) models.FinanceSummary {
	var summary models.FinanceSummary

	revenues := make([]float64, 0, len(projects))
	expenses := make([]float64, 0, len(projects))
	pending := make([]float64, 0, len(projects))
	for _, p := range projects {
		revenues = append(revenues, p.AdvanceReceived)
		expenses = append(expenses, p.PaidToPos)
		pending = append(pending, p.PendingPoPayments)

		switch p.Status {
		case models.ProjectStatusCompleted:
			summary.CompletedProjects++
		default:
			summary.ActiveProjects++
		}
	}

	unlinked := make([]float64, 0, len(unlinkedOrders))
	for _, po := range unlinkedOrders {
		unlinked = append(unlinked, po.PaidAmount)
	}

	summary.TotalRevenue = utils.SumAmounts(revenues...)
	summary.TotalExpenses = utils.SumAmounts(expenses...)
	summary.TotalProfit = utils.SubAmount(summary.TotalRevenue, summary.TotalExpenses)
	summary.PendingPayments = utils.SumAmounts(pending...)
	summary.UnlinkedPoSpend = utils.SumAmounts(unlinked...)
	summary.TotalExpensesAll = utils.AddAmount(summary.TotalExpenses, summary.UnlinkedPoSpend)

	return summary
}
