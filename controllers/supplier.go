package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BerniceZTT/bms_end/models"
	"github.com/BerniceZTT/bms_end/repository"
	"github.com/BerniceZTT/bms_end/utils"
)

// 1. 获取供应商列表
func GetAllSuppliers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := repository.Collection(repository.SuppliersCollection)

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取供应商列表失败"})
		return
	}
	defer cursor.Close(ctx)

	suppliers := []models.Supplier{}
	if err = cursor.All(ctx, &suppliers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "解析供应商列表失败"})
		return
	}

	c.JSON(http.StatusOK, models.SupplierListResponse{Suppliers: suppliers})
}

// 2. 创建供应商
func CreateSupplier(c *gin.Context) {
	var req models.SupplierCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := repository.Collection(repository.SuppliersCollection)

	// 供应商名称查重
	count, err := collection.CountDocuments(ctx, bson.M{"name": req.Name})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("检查供应商名称失败"))
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "同名供应商已存在"})
		return
	}

	now := time.Now()
	supplier := models.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := collection.InsertOne(ctx, supplier)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("创建供应商失败"))
		return
	}
	supplier.ID = result.InsertedID.(primitive.ObjectID)

	utils.Logger.Info().Str("supplierId", supplier.ID.Hex()).Str("name", supplier.Name).Msg("创建供应商成功")
	utils.SuccessResponse(c, supplier, "创建供应商成功", http.StatusCreated)
}

// 3. 更新供应商
func UpdateSupplier(c *gin.Context) {
	supplierID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(supplierID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的供应商ID格式"})
		return
	}

	var req models.SupplierUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	updateData := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		updateData["name"] = req.Name
	}
	if req.ContactPerson != "" {
		updateData["contactPerson"] = req.ContactPerson
	}
	if req.Email != "" {
		updateData["email"] = req.Email
	}
	if req.Phone != "" {
		updateData["phone"] = req.Phone
	}
	if req.Address != "" {
		updateData["address"] = req.Address
	}

	collection := repository.Collection(repository.SuppliersCollection)
	result, err := collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateData})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("更新供应商失败"))
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("供应商"))
		return
	}

	// 同步库存上的冗余供应商名
	if req.Name != "" {
		_, err = repository.Collection(repository.InventoryCollection).UpdateMany(
			ctx,
			bson.M{"supplierId": supplierID},
			bson.M{"$set": bson.M{"supplierName": req.Name, "updatedAt": time.Now()}},
		)
		if err != nil {
			utils.Logger.Error().Err(err).Str("supplierId", supplierID).Msg("同步库存供应商名失败")
		}
	}

	utils.SuccessResponse(c, nil, "更新供应商成功")
}

// 4. 删除供应商
func DeleteSupplier(c *gin.Context) {
	supplierID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(supplierID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的供应商ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 仍有库存物料引用时拒绝删除
	count, err := repository.Collection(repository.InventoryCollection).CountDocuments(ctx, bson.M{"supplierId": supplierID})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("检查供应商引用失败"))
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "仍有库存物料关联该供应商，不能删除"})
		return
	}

	collection := repository.Collection(repository.SuppliersCollection)
	var supplier models.Supplier
	err = collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&supplier)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("供应商"))
		} else {
			utils.HandleError(c, utils.CreatePersistenceError("删除供应商失败"))
		}
		return
	}

	utils.Logger.Info().Str("supplierId", supplierID).Str("name", supplier.Name).Msg("删除供应商成功")
	utils.SuccessResponse(c, nil, "删除供应商成功")
}
