package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead 销售线索模型（CRM看板卡片）
type Lead struct {
	ID                  primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	LeadNo              string             `json:"leadNo" bson:"leadNo"`
	CustomerID          primitive.ObjectID `json:"customerId" bson:"customerId"`
	CustomerName        string             `json:"customerName" bson:"customerName"`
	Title               string             `json:"title" bson:"title"`
	Stage               LeadStage          `json:"stage" bson:"stage"`
	BOM                 []QuoteItem        `json:"bom,omitempty" bson:"bom,omitempty"`
	ProfitMarginPercent float64            `json:"profitMarginPercent" bson:"profitMarginPercent"`
	QuoteID             primitive.ObjectID `json:"quoteId,omitempty" bson:"quoteId,omitempty"`
	Notes               string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// LeadCreateRequest 创建线索请求
type LeadCreateRequest struct {
	CustomerID string    `json:"customerId" binding:"required"`
	Title      string    `json:"title" binding:"required,min=1"`
	Stage      LeadStage `json:"stage"`
	Notes      string    `json:"notes"`
}

// LeadStageUpdateRequest 移动看板阶段请求
type LeadStageUpdateRequest struct {
	Stage LeadStage `json:"stage" binding:"required"`
}

// LeadBOMUpdateRequest 更新线索BOM请求
type LeadBOMUpdateRequest struct {
	BOM                 []QuoteItem `json:"bom" binding:"required,min=1,dive"`
	ProfitMarginPercent float64     `json:"profitMarginPercent" binding:"min=0"`
}

// LeadListResponse 线索列表响应
type LeadListResponse struct {
	Leads []Lead `json:"leads"`
}
