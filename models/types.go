package models

// LeadStage 线索阶段枚举（看板列，按推进顺序排列）
type LeadStage string

const (
	LeadStageInitialDiscussion LeadStage = "initial-discussion" // 初步洽谈
	LeadStageSiteVisit         LeadStage = "site-visit"         // 现场勘察
	LeadStageMeasurements      LeadStage = "measurements"       // 测量
	LeadStageEstimate          LeadStage = "estimate"           // 报价
	LeadStageEstimateApproval  LeadStage = "estimate-approval"  // 报价确认
	LeadStageWon               LeadStage = "won"                // 赢单
	LeadStageLost              LeadStage = "lost"               // 丢单
)

// AllLeadStages 看板阶段顺序
var AllLeadStages = []LeadStage{
	LeadStageInitialDiscussion,
	LeadStageSiteVisit,
	LeadStageMeasurements,
	LeadStageEstimate,
	LeadStageEstimateApproval,
	LeadStageWon,
	LeadStageLost,
}

// IsValidLeadStage 检查阶段取值是否合法
func IsValidLeadStage(stage LeadStage) bool {
	for _, s := range AllLeadStages {
		if s == stage {
			return true
		}
	}
	return false
}

// ProjectStatus 项目状态枚举
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"    // 进行中
	ProjectStatusCompleted ProjectStatus = "completed" // 已完结
)

// PurchaseOrderStatus 采购单状态枚举
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending PurchaseOrderStatus = "pending" // 待付款
	PurchaseOrderStatusSettled PurchaseOrderStatus = "settled" // 已结清
)

// ItemType 物料类型枚举
type ItemType string

const (
	ItemTypeMaterial  ItemType = "material"  // 原材料
	ItemTypeHardware  ItemType = "hardware"  // 五金件
	ItemTypeAccessory ItemType = "accessory" // 配件
	ItemTypeService   ItemType = "service"   // 服务
)

// Pagination 分页信息
type Pagination struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Pages int64 `json:"pages"`
}

// PaymentRequest 付款请求（采购单付款/客户回款共用）
type PaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// ConvertQuoteRequest 报价单转项目请求
type ConvertQuoteRequest struct {
	AdvanceAmount float64 `json:"advanceAmount"`
}
