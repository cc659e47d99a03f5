package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project 项目模型
// 不变量：balanceRemaining = totalValue - advanceReceived（非负）
// pendingPoPayments = totalPoCost - paidToPos
type Project struct {
	ID                primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProjectNo         string             `json:"projectNo" bson:"projectNo"`
	QuoteID           primitive.ObjectID `json:"quoteId" bson:"quoteId"`
	CustomerID        primitive.ObjectID `json:"customerId" bson:"customerId"`
	CustomerName      string             `json:"customerName" bson:"customerName"`
	ProjectName       string             `json:"projectName" bson:"projectName"`
	Items             []QuoteItem        `json:"items" bson:"items"`
	TotalValue        float64            `json:"totalValue" bson:"totalValue"`
	AdvanceReceived   float64            `json:"advanceReceived" bson:"advanceReceived"`
	BalanceRemaining  float64            `json:"balanceRemaining" bson:"balanceRemaining"`
	PurchaseOrderIDs  []string           `json:"purchaseOrderIds" bson:"purchaseOrderIds"`
	TotalPoCost       float64            `json:"totalPoCost" bson:"totalPoCost"`
	PaidToPos         float64            `json:"paidToPos" bson:"paidToPos"`
	PendingPoPayments float64            `json:"pendingPoPayments" bson:"pendingPoPayments"`
	Status            ProjectStatus      `json:"status" bson:"status"`
	CompletedAt       *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProjectListResponse 项目列表响应
type ProjectListResponse struct {
	Projects []Project `json:"projects"`
}

// ProjectDetailResponse 项目详情响应（带关联采购单）
type ProjectDetailResponse struct {
	Success        bool            `json:"success"`
	Project        Project         `json:"project"`
	PurchaseOrders []PurchaseOrder `json:"purchaseOrders"`
}
