package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuoteItem 报价单行项目（也作为线索BOM的行）
type QuoteItem struct {
	Name      string   `json:"name" bson:"name" binding:"required"`
	Type      ItemType `json:"type" bson:"type"`
	Quantity  int      `json:"quantity" bson:"quantity" binding:"required,min=1"`
	UnitPrice float64  `json:"unitPrice" bson:"unitPrice" binding:"min=0"`
}

// Quote 报价单模型
// subtotal/profit/total 在写入时按两位小数计算并落库
type Quote struct {
	ID                  primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	QuoteNo             string             `json:"quoteNo" bson:"quoteNo"`
	CustomerID          primitive.ObjectID `json:"customerId" bson:"customerId"`
	CustomerName        string             `json:"customerName" bson:"customerName"`
	ProjectName         string             `json:"projectName" bson:"projectName"`
	Items               []QuoteItem        `json:"items" bson:"items"`
	ProfitMarginPercent float64            `json:"profitMarginPercent" bson:"profitMarginPercent"`
	Subtotal            float64            `json:"subtotal" bson:"subtotal"`
	Profit              float64            `json:"profit" bson:"profit"`
	Total               float64            `json:"total" bson:"total"`
	LeadID              primitive.ObjectID `json:"leadId,omitempty" bson:"leadId,omitempty"`
	ConvertedProjectID  primitive.ObjectID `json:"convertedProjectId,omitempty" bson:"convertedProjectId,omitempty"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// IsConverted 报价单是否已转为项目
func (q *Quote) IsConverted() bool {
	return !q.ConvertedProjectID.IsZero()
}

// QuoteCreateRequest 创建报价单请求
type QuoteCreateRequest struct {
	CustomerID          string      `json:"customerId" binding:"required"`
	ProjectName         string      `json:"projectName" binding:"required,min=1"`
	Items               []QuoteItem `json:"items" binding:"required,min=1,dive"`
	ProfitMarginPercent float64     `json:"profitMarginPercent" binding:"min=0"`
	LeadID              string      `json:"leadId"`
}

// QuoteListResponse 报价单列表响应
type QuoteListResponse struct {
	Quotes []Quote `json:"quotes"`
}

// QuoteDetailResponse 报价单详情响应
type QuoteDetailResponse struct {
	Success bool  `json:"success"`
	Quote   Quote `json:"quote"`
}

// ConvertQuoteResponse 报价单转项目响应
type ConvertQuoteResponse struct {
	Success        bool            `json:"success"`
	Project        Project         `json:"project"`
	PurchaseOrders []PurchaseOrder `json:"purchaseOrders"`
	Message        string          `json:"message,omitempty"`
}
