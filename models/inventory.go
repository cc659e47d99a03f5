package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SupplierUnassigned 无法匹配供应商的物料归入的哨兵供应商ID
const SupplierUnassigned = "unassigned"

// SupplierUnassignedName 哨兵供应商的展示名
const SupplierUnassignedName = "未指定供应商"

// InventoryItem 库存物料模型
// 供应商关联使用稳定的 supplierId，supplierName 仅用于展示
type InventoryItem struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Code         string             `json:"code" bson:"code" binding:"required"`
	Name         string             `json:"name" bson:"name" binding:"required"`
	Type         ItemType           `json:"type" bson:"type"`
	SupplierID   string             `json:"supplierId" bson:"supplierId"`
	SupplierName string             `json:"supplierName" bson:"supplierName"`
	Quantity     int                `json:"quantity" bson:"quantity"`
	UnitPrice    float64            `json:"unitPrice" bson:"unitPrice"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// InventoryItemCreateRequest 创建物料请求
type InventoryItemCreateRequest struct {
	Code        string   `json:"code" binding:"required,min=1"`
	Name        string   `json:"name" binding:"required,min=1"`
	Type        ItemType `json:"type" binding:"required,oneof=material hardware accessory service"`
	SupplierID  string   `json:"supplierId"`
	Quantity    int      `json:"quantity" binding:"min=0"`
	UnitPrice   float64  `json:"unitPrice" binding:"min=0"`
	Description string   `json:"description"`
}

// InventoryItemUpdateRequest 更新物料请求
type InventoryItemUpdateRequest struct {
	Name        string   `json:"name" binding:"omitempty,min=1"`
	Type        ItemType `json:"type" binding:"omitempty,oneof=material hardware accessory service"`
	SupplierID  string   `json:"supplierId"`
	Quantity    *int     `json:"quantity" binding:"omitempty,min=0"`
	UnitPrice   *float64 `json:"unitPrice" binding:"omitempty,min=0"`
	Description string   `json:"description"`
}

// InventoryListResponse 物料列表响应
type InventoryListResponse struct {
	Items []InventoryItem `json:"items"`
}
