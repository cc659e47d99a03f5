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
	"github.com/BerniceZTT/bms_end/service"
	"github.com/BerniceZTT/bms_end/utils"
)

// 1. 获取采购单列表
// 支持按状态过滤；linked=false 时只返回手工创建的独立采购单
func GetAllPurchaseOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if linked := c.Query("linked"); linked == "false" {
		filter["projectId"] = bson.M{"$exists": false}
	} else if linked == "true" {
		filter["projectId"] = bson.M{"$exists": true}
	}

	collection := repository.Collection(repository.PurchaseOrdersCollection)
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取采购单列表失败"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.PurchaseOrder{}
	if err = cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "解析采购单列表失败"})
		return
	}

	c.JSON(http.StatusOK, models.PurchaseOrderListResponse{Orders: orders})
}

// 2. 获取采购单详情
func GetPurchaseOrderDetail(c *gin.Context) {
	orderID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的采购单ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var order models.PurchaseOrder
	err = repository.Collection(repository.PurchaseOrdersCollection).
		FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("采购单"))
		} else {
			utils.HandleError(c, utils.CreatePersistenceError("查询采购单失败"))
		}
		return
	}

	c.JSON(http.StatusOK, models.PurchaseOrderDetailResponse{Success: true, Order: order})
}

// 3. 手工创建采购单（独立于项目，单价从库存按名称解析）
func CreatePurchaseOrder(c *gin.Context) {
	var req models.PurchaseOrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}

	supplierObjID, err := primitive.ObjectIDFromHex(req.SupplierID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的供应商ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

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

	// 行项目单价从库存解析，查不到的物料拒绝下单
	items := make([]models.OrderItem, 0, len(req.Items))
	lineTotals := make([]float64, 0, len(req.Items))
	for _, reqItem := range req.Items {
		inv := findInventoryItemByName(ctx, reqItem.Name)
		if inv == nil {
			utils.HandleError(c, utils.CreateNotFoundError("库存物料["+reqItem.Name+"]"))
			return
		}
		items = append(items, models.OrderItem{
			Name:      inv.Name,
			Quantity:  reqItem.Quantity,
			UnitPrice: inv.UnitPrice,
		})
		lineTotals = append(lineTotals, utils.LineTotal(reqItem.Quantity, inv.UnitPrice))
	}

	orderDate := time.Now()
	if req.OrderDate != "" {
		parsed, err := time.Parse("2006-01-02", req.OrderDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的下单日期格式，应为YYYY-MM-DD"})
			return
		}
		orderDate = parsed
	}

	orderNo, err := repository.NextSequenceCode(ctx, repository.OrderNoPrefix)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("生成采购单编号失败"))
		return
	}

	now := time.Now()
	order := models.PurchaseOrder{
		OrderNo:      orderNo,
		SupplierID:   req.SupplierID,
		SupplierName: supplier.Name,
		OrderDate:    orderDate,
		Items:        items,
		TotalAmount:  utils.SumAmounts(lineTotals...),
		Status:       models.PurchaseOrderStatusPending,
		PaidAmount:   0,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := repository.Collection(repository.PurchaseOrdersCollection).InsertOne(ctx, order)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("创建采购单失败"))
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	utils.Logger.Info().Str("orderNo", orderNo).Float64("totalAmount", order.TotalAmount).Msg("创建采购单成功")
	utils.SuccessResponse(c, order, "创建采购单成功", http.StatusCreated)
}

// 4. 采购单付款
// 校验通过后更新采购单，并把付款同步到所属项目的对账字段；
// 两个文档的更新在一个事务内完成
func PayPurchaseOrder(c *gin.Context) {
	orderID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的采购单ID格式"})
		return
	}

	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var order models.PurchaseOrder
	err = repository.Collection(repository.PurchaseOrdersCollection).
		FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("采购单"))
		} else {
			utils.HandleError(c, utils.CreatePersistenceError("查询采购单失败"))
		}
		return
	}

	prevPaid := order.PaidAmount
	prevStatus := order.Status

	now := time.Now()
	if err := service.ApplyPurchaseOrderPayment(&order, req.Amount, now); err != nil {
		utils.HandleError(c, err)
		return
	}

	// 关联项目同步对账字段
	var project *models.Project
	if !order.ProjectID.IsZero() {
		var p models.Project
		err = repository.Collection(repository.ProjectsCollection).
			FindOne(ctx, bson.M{"_id": order.ProjectID}).Decode(&p)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				utils.HandleError(c, utils.CreateNotFoundError("采购单所属项目"))
			} else {
				utils.HandleError(c, utils.CreatePersistenceError("查询所属项目失败"))
			}
			return
		}
		service.PropagatePoPaymentToProject(&p, req.Amount, now)
		project = &p
	}

	orderUpdate := bson.M{"$set": bson.M{
		"paidAmount": order.PaidAmount,
		"status":     order.Status,
		"paidDate":   order.PaidDate,
		"updatedAt":  order.UpdatedAt,
	}}

	writeAll := func(sc context.Context) error {
		if _, err := repository.Collection(repository.PurchaseOrdersCollection).
			UpdateOne(sc, bson.M{"_id": order.ID}, orderUpdate); err != nil {
			return err
		}
		if project != nil {
			if _, err := repository.Collection(repository.ProjectsCollection).
				UpdateOne(sc, bson.M{"_id": project.ID}, bson.M{"$set": bson.M{
					"paidToPos":         project.PaidToPos,
					"pendingPoPayments": project.PendingPoPayments,
					"updatedAt":         project.UpdatedAt,
				}}); err != nil {
				return err
			}
		}
		return nil
	}

	err = repository.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		return writeAll(sc)
	})
	if err != nil && repository.IsTransactionUnsupported(err) {
		// 单机部署：顺序写入，项目同步失败时恢复采购单原值
		err = writeAll(ctx)
		if err != nil {
			_, restoreErr := repository.Collection(repository.PurchaseOrdersCollection).
				UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{"$set": bson.M{
					"paidAmount": prevPaid,
					"status":     prevStatus,
					"paidDate":   nil,
					"updatedAt":  time.Now(),
				}})
			if restoreErr != nil {
				utils.Logger.Error().Err(restoreErr).Str("orderNo", order.OrderNo).Msg("恢复采购单付款状态失败")
				utils.HandleError(c, utils.CreateUncertainOperationError())
				return
			}
		}
	}
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("保存付款失败"))
		return
	}

	utils.Logger.Info().
		Str("orderNo", order.OrderNo).
		Float64("amount", req.Amount).
		Str("status", string(order.Status)).
		Msg("采购单付款成功")
	utils.SuccessResponse(c, order, "付款成功")
}

// 5. 删除采购单
func DeletePurchaseOrder(c *gin.Context) {
	orderID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的采购单ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var order models.PurchaseOrder
	err = repository.Collection(repository.PurchaseOrdersCollection).
		FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("采购单"))
		} else {
			utils.HandleError(c, utils.CreatePersistenceError("查询采购单失败"))
		}
		return
	}

	// 项目生成的或已有付款的采购单不允许删除
	if !order.ProjectID.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "项目关联的采购单不能删除"})
		return
	}
	if order.PaidAmount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "已有付款记录的采购单不能删除"})
		return
	}

	if _, err = repository.Collection(repository.PurchaseOrdersCollection).DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("删除采购单失败"))
		return
	}

	utils.SuccessResponse(c, nil, "删除采购单成功")
}
