package models

// FinanceSummary 财务汇总（派生数据，按需计算，不落库）
// totalExpenses 仅统计关联项目的采购付款；手工采购单的支出
// 单独在 unlinkedPoSpend 中给出
type FinanceSummary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalExpenses     float64 `json:"totalExpenses"`
	TotalProfit       float64 `json:"totalProfit"`
	PendingPayments   float64 `json:"pendingPayments"`
	UnlinkedPoSpend   float64 `json:"unlinkedPoSpend"`
	TotalExpensesAll  float64 `json:"totalExpensesAll"`
	ActiveProjects    int     `json:"activeProjects"`
	CompletedProjects int     `json:"completedProjects"`
}

// DashboardStats 数据看板统计
type DashboardStats struct {
	TotalItems          int64               `json:"totalItems"`
	TotalSuppliers      int64               `json:"totalSuppliers"`
	TotalCustomers      int64               `json:"totalCustomers"`
	PendingOrders       int64               `json:"pendingOrders"`
	TotalInventoryValue float64             `json:"totalInventoryValue"`
	LeadsByStage        map[LeadStage]int64 `json:"leadsByStage"`
	RecentItems         []InventoryItem     `json:"recentItems"`
}
