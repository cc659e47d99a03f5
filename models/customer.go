package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer 客户模型
type Customer struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" binding:"required"`
	ContactPerson string             `json:"contactPerson" bson:"contactPerson"`
	Phone         string             `json:"phone" bson:"phone"`
	Email         string             `json:"email" bson:"email"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	Notes         string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CustomerCreateRequest 创建客户请求
type CustomerCreateRequest struct {
	Name          string `json:"name" binding:"required,min=1"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// CustomerUpdateRequest 更新客户请求
type CustomerUpdateRequest struct {
	Name          string `json:"name" binding:"omitempty,min=1"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// CustomerListResponse 客户列表响应
type CustomerListResponse struct {
	Customers []Customer `json:"customers"`
}
