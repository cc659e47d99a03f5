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

// 1. 获取库存物料列表，支持按类型过滤
func GetInventory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter := bson.M{}
	if itemType := c.Query("type"); itemType != "" {
		filter["type"] = itemType
	}

	collection := repository.Collection(repository.InventoryCollection)
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取库存列表失败"})
		return
	}
	defer cursor.Close(ctx)

	items := []models.InventoryItem{}
	if err = cursor.All(ctx, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "解析库存列表失败"})
		return
	}

	c.JSON(http.StatusOK, models.InventoryListResponse{Items: items})
}

// 2. 创建库存物料
func CreateInventoryItem(c *gin.Context) {
	var req models.InventoryItemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}
	if !utils.IsValidAmount(req.UnitPrice) {
		utils.HandleError(c, utils.CreateInvalidAmountError("单价必须为有限的非负数"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := repository.Collection(repository.InventoryCollection)

	// 物料编码唯一（索引兜底，这里先查一次给出友好错误）
	count, err := collection.CountDocuments(ctx, bson.M{"code": req.Code})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("检查物料编码失败"))
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "物料编码已存在"})
		return
	}

	// 解析供应商
	supplierID := models.SupplierUnassigned
	supplierName := models.SupplierUnassignedName
	if req.SupplierID != "" {
		supplierObjID, err := primitive.ObjectIDFromHex(req.SupplierID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的供应商ID格式"})
			return
		}
		var supplier models.Supplier
		err = repository.Collection(repository.SuppliersCollection).
			FindOne(ctx, bson.M{"_id": supplierObjID}).Decode(&supplier)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				utils.HandleError(c, utils.CreateNotFoundError("供应商"))
			} else {
				utils.HandleError(c, utils.CreatePersistenceError("查询供应商失败"))
			}
			return
		}
		supplierID = req.SupplierID
		supplierName = supplier.Name
	}

	now := time.Now()
	item := models.InventoryItem{
		Code:         req.Code,
		Name:         req.Name,
		Type:         req.Type,
		SupplierID:   supplierID,
		SupplierName: supplierName,
		Quantity:     req.Quantity,
		UnitPrice:    utils.Round2(req.UnitPrice),
		Description:  req.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := collection.InsertOne(ctx, item)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("创建库存物料失败"))
		return
	}
	item.ID = result.InsertedID.(primitive.ObjectID)

	utils.Logger.Info().Str("code", item.Code).Str("name", item.Name).Msg("创建库存物料成功")
	utils.SuccessResponse(c, item, "创建库存物料成功", http.StatusCreated)
}

// 3. 更新库存物料
func UpdateInventoryItem(c *gin.Context) {
	itemID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的物料ID格式"})
		return
	}

	var req models.InventoryItemUpdateRequest
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
	if req.Type != "" {
		updateData["type"] = req.Type
	}
	if req.Quantity != nil {
		updateData["quantity"] = *req.Quantity
	}
	if req.UnitPrice != nil {
		if !utils.IsValidAmount(*req.UnitPrice) {
			utils.HandleError(c, utils.CreateInvalidAmountError("单价必须为有限的非负数"))
			return
		}
		updateData["unitPrice"] = utils.Round2(*req.UnitPrice)
	}
	if req.Description != "" {
		updateData["description"] = req.Description
	}
	if req.SupplierID != "" {
		supplierObjID, err := primitive.ObjectIDFromHex(req.SupplierID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的供应商ID格式"})
			return
		}
		var supplier models.Supplier
		err = repository.Collection(repository.SuppliersCollection).
			FindOne(ctx, bson.M{"_id": supplierObjID}).Decode(&supplier)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				utils.HandleError(c, utils.CreateNotFoundError("供应商"))
			} else {
				utils.HandleError(c, utils.CreatePersistenceError("查询供应商失败"))
			}
			return
		}
		updateData["supplierId"] = req.SupplierID
		updateData["supplierName"] = supplier.Name
	}

	collection := repository.Collection(repository.InventoryCollection)
	result, err := collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateData})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("更新库存物料失败"))
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("库存物料"))
		return
	}

	utils.SuccessResponse(c, nil, "更新库存物料成功")
}

// 4. 删除库存物料
func DeleteInventoryItem(c *gin.Context) {
	itemID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的物料ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := repository.Collection(repository.InventoryCollection)
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("删除库存物料失败"))
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("库存物料"))
		return
	}

	utils.SuccessResponse(c, nil, "删除库存物料成功")
}

// findInventoryItemByName 按名称查询库存物料，未命中返回nil
func findInventoryItemByName(ctx context.Context, name string) *models.InventoryItem {
	var item models.InventoryItem
	err := repository.Collection(repository.InventoryCollection).
		FindOne(ctx, bson.M{"name": name}).Decode(&item)
	if err != nil {
		return nil
	}
	return &item
}
