package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supplier 供应商模型
type Supplier struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" binding:"required"`
	ContactPerson string             `json:"contactPerson" bson:"contactPerson"`
	Email         string             `json:"email" bson:"email"`
	Phone         string             `json:"phone" bson:"phone"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SupplierCreateRequest 创建供应商请求
type SupplierCreateRequest struct {
	Name          string `json:"name" binding:"required,min=1"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// SupplierUpdateRequest 更新供应商请求
type SupplierUpdateRequest struct {
	Name          string `json:"name" binding:"omitempty,min=1"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// SupplierListResponse 供应商列表响应
type SupplierListResponse struct {
	Suppliers []Supplier `json:"suppliers"`
}
