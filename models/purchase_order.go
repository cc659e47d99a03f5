package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem 采购单行项目
type OrderItem struct {
	Name      string  `json:"name" bson:"name" binding:"required"`
	Quantity  int     `json:"quantity" bson:"quantity" binding:"required,min=1"`
	UnitPrice float64 `json:"unitPrice" bson:"unitPrice"`
}

// PurchaseOrder 采购单模型
// projectId 为空表示手工创建的独立采购单，不参与项目对账
type PurchaseOrder struct {
	ID           primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderNo      string              `json:"orderNo" bson:"orderNo"`
	ProjectID    primitive.ObjectID  `json:"projectId,omitempty" bson:"projectId,omitempty"`
	SupplierID   string              `json:"supplierId" bson:"supplierId"`
	SupplierName string              `json:"supplierName" bson:"supplierName"`
	OrderDate    time.Time           `json:"orderDate" bson:"orderDate"`
	Items        []OrderItem         `json:"items" bson:"items"`
	TotalAmount  float64             `json:"totalAmount" bson:"totalAmount"`
	Status       PurchaseOrderStatus `json:"status" bson:"status"`
	PaidAmount   float64             `json:"paidAmount" bson:"paidAmount"`
	PaidDate     *time.Time          `json:"paidDate,omitempty" bson:"paidDate,omitempty"`
	Notes        string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// Outstanding 采购单未付余额
func (po *PurchaseOrder) Outstanding() float64 {
	return po.TotalAmount - po.PaidAmount
}

// PurchaseOrderCreateRequest 手工创建采购单请求
// 行项目只带名称和数量，单价从库存按名称解析
type PurchaseOrderCreateRequest struct {
	SupplierID string                   `json:"supplierId" binding:"required"`
	OrderDate  string                   `json:"orderDate"`
	Items      []OrderItemCreateRequest `json:"items" binding:"required,min=1,dive"`
	Notes      string                   `json:"notes"`
}

// OrderItemCreateRequest 采购单行项目请求
type OrderItemCreateRequest struct {
	Name     string `json:"name" binding:"required,min=1"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// PurchaseOrderListResponse 采购单列表响应
type PurchaseOrderListResponse struct {
	Orders []PurchaseOrder `json:"orders"`
}

// PurchaseOrderDetailResponse 采购单详情响应
type PurchaseOrderDetailResponse struct {
	Success bool          `json:"success"`
	Order   PurchaseOrder `json:"order"`
}
