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

// 1. 获取报价单列表
func GetAllQuotes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := repository.Collection(repository.QuotesCollection)
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取报价单列表失败"})
		return
	}
	defer cursor.Close(ctx)

	quotes := []models.Quote{}
	if err = cursor.All(ctx, &quotes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "解析报价单列表失败"})
		return
	}

	c.JSON(http.StatusOK, models.QuoteListResponse{Quotes: quotes})
}

// 2. 获取报价单详情
func GetQuoteDetail(c *gin.Context) {
	quoteID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(quoteID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的报价单ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var quote models.Quote
	err = repository.Collection(repository.QuotesCollection).
		FindOne(ctx, bson.M{"_id": objID}).Decode(&quote)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("报价单"))
		} else {
			utils.HandleError(c, utils.CreatePersistenceError("查询报价单失败"))
		}
		return
	}

	c.JSON(http.StatusOK, models.QuoteDetailResponse{Success: true, Quote: quote})
}

// 3. 创建报价单
func CreateQuote(c *gin.Context) {
	var req models.QuoteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}

	for _, item := range req.Items {
		if !utils.IsValidAmount(item.UnitPrice) {
			utils.HandleError(c, utils.CreateInvalidAmountError("行项目单价必须为有限的非负数"))
			return
		}
	}
	if !utils.IsValidAmount(req.ProfitMarginPercent) {
		utils.HandleError(c, utils.CreateInvalidAmountError("利润率必须为有限的非负数"))
		return
	}

	customerObjID, err := primitive.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的客户ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	customer, err := findCustomerByID(ctx, customerObjID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// 可选的来源线索
	var leadObjID primitive.ObjectID
	if req.LeadID != "" {
		leadObjID, err = primitive.ObjectIDFromHex(req.LeadID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的线索ID格式"})
			return
		}
		count, err := repository.Collection(repository.LeadsCollection).CountDocuments(ctx, bson.M{"_id": leadObjID})
		if err != nil {
			utils.HandleError(c, utils.CreatePersistenceError("查询线索失败"))
			return
		}
		if count == 0 {
			utils.HandleError(c, utils.CreateNotFoundError("线索"))
			return
		}
	}

	totals := service.ComputeQuoteTotals(req.Items, req.ProfitMarginPercent)

	quoteNo, err := repository.NextSequenceCode(ctx, repository.QuoteNoPrefix)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("生成报价单编号失败"))
		return
	}

	now := time.Now()
	quote := models.Quote{
		QuoteNo:             quoteNo,
		CustomerID:          customer.ID,
		CustomerName:        customer.Name,
		ProjectName:         req.ProjectName,
		Items:               req.Items,
		ProfitMarginPercent: req.ProfitMarginPercent,
		Subtotal:            totals.Subtotal,
		Profit:              totals.Profit,
		Total:               totals.Total,
		LeadID:              leadObjID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	result, err := repository.Collection(repository.QuotesCollection).InsertOne(ctx, quote)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("创建报价单失败"))
		return
	}
	quote.ID = result.InsertedID.(primitive.ObjectID)

	// 回写线索上的报价单关联
	if !leadObjID.IsZero() {
		_, err = repository.Collection(repository.LeadsCollection).UpdateOne(
			ctx,
			bson.M{"_id": leadObjID},
			bson.M{"$set": bson.M{"quoteId": quote.ID, "updatedAt": now}},
		)
		if err != nil {
			utils.Logger.Error().Err(err).Str("quoteNo", quoteNo).Msg("回写线索报价单关联失败")
		}
	}

	utils.Logger.Info().Str("quoteNo", quoteNo).Float64("total", quote.Total).Msg("创建报价单成功")
	utils.SuccessResponse(c, quote, "创建报价单成功", http.StatusCreated)
}

// 4. 从线索BOM生成报价单
func CreateQuoteFromLead(c *gin.Context) {
	leadID := c.Param("id")
	leadObjID, err := primitive.ObjectIDFromHex(leadID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的线索ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var lead models.Lead
	err = repository.Collection(repository.LeadsCollection).
		FindOne(ctx, bson.M{"_id": leadObjID}).Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("线索"))
		} else {
			utils.HandleError(c, utils.CreatePersistenceError("查询线索失败"))
		}
		return
	}

	if len(lead.BOM) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "线索没有BOM，无法生成报价单"})
		return
	}

	totals := service.ComputeQuoteTotals(lead.BOM, lead.ProfitMarginPercent)

	quoteNo, err := repository.NextSequenceCode(ctx, repository.QuoteNoPrefix)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("生成报价单编号失败"))
		return
	}

	now := time.Now()
	quote := models.Quote{
		QuoteNo:             quoteNo,
		CustomerID:          lead.CustomerID,
		CustomerName:        lead.CustomerName,
		ProjectName:         lead.Title,
		Items:               append([]models.QuoteItem(nil), lead.BOM...),
		ProfitMarginPercent: lead.ProfitMarginPercent,
		Subtotal:            totals.Subtotal,
		Profit:              totals.Profit,
		Total:               totals.Total,
		LeadID:              lead.ID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	result, err := repository.Collection(repository.QuotesCollection).InsertOne(ctx, quote)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("创建报价单失败"))
		return
	}
	quote.ID = result.InsertedID.(primitive.ObjectID)

	// 线索推进到报价阶段并关联报价单
	_, err = repository.Collection(repository.LeadsCollection).UpdateOne(
		ctx,
		bson.M{"_id": lead.ID},
		bson.M{"$set": bson.M{"quoteId": quote.ID, "stage": models.LeadStageEstimate, "updatedAt": now}},
	)
	if err != nil {
		utils.Logger.Error().Err(err).Str("quoteNo", quoteNo).Msg("更新线索阶段失败")
	}

	utils.SuccessResponse(c, quote, "从线索生成报价单成功", http.StatusCreated)
}

// 5. 报价单转项目
// 校验全部通过后，项目、采购单、报价单标记和线索阶段在一个
// 事务内落库；不支持事务的部署走补偿写入，失败时回收已插入
// 的文档，保证不会留下引用不存在采购单的项目
func ConvertQuote(c *gin.Context) {
	quoteID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(quoteID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的报价单ID格式"})
		return
	}

	var req models.ConvertQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var quote models.Quote
	err = repository.Collection(repository.QuotesCollection).
		FindOne(ctx, bson.M{"_id": objID}).Decode(&quote)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("报价单"))
		} else {
			utils.HandleError(c, utils.CreatePersistenceError("查询报价单失败"))
		}
		return
	}

	customer, err := findCustomerByID(ctx, quote.CustomerID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// 预取行项目涉及的库存物料，构建名称查找表
	names := make([]string, 0, len(quote.Items))
	for _, item := range quote.Items {
		names = append(names, item.Name)
	}
	inventoryByName := make(map[string]models.InventoryItem)
	if len(names) > 0 {
		cursor, err := repository.Collection(repository.InventoryCollection).
			Find(ctx, bson.M{"name": bson.M{"$in": names}})
		if err != nil {
			utils.HandleError(c, utils.CreatePersistenceError("查询库存物料失败"))
			return
		}
		var invItems []models.InventoryItem
		if err = cursor.All(ctx, &invItems); err != nil {
			utils.HandleError(c, utils.CreatePersistenceError("解析库存物料失败"))
			return
		}
		for _, inv := range invItems {
			if _, ok := inventoryByName[inv.Name]; !ok {
				inventoryByName[inv.Name] = inv
			}
		}
	}
	lookup := func(name string) *models.InventoryItem {
		if inv, ok := inventoryByName[name]; ok {
			return &inv
		}
		return nil
	}

	allocate := func(prefix string) (string, error) {
		return repository.NextSequenceCode(ctx, prefix)
	}

	project, orders, err := service.BuildConversion(&quote, customer, req.AdvanceAmount, lookup, allocate, time.Now())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// 先分配项目文档ID，让采购单带上回引
	project.ID = primitive.NewObjectID()
	for _, po := range orders {
		po.ID = primitive.NewObjectID()
		po.ProjectID = project.ID
	}

	if err := persistConversion(ctx, &quote, project, orders); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().
		Str("quoteNo", quote.QuoteNo).
		Str("projectNo", project.ProjectNo).
		Int("purchaseOrders", len(orders)).
		Msg("报价单转项目成功")

	poValues := make([]models.PurchaseOrder, len(orders))
	for i, po := range orders {
		poValues[i] = *po
	}
	c.JSON(http.StatusCreated, models.ConvertQuoteResponse{
		Success:        true,
		Project:        *project,
		PurchaseOrders: poValues,
		Message:        "报价单转项目成功",
	})
}

// persistConversion 落库转换结果：优先走事务，事务不可用时补偿写入
func persistConversion(ctx context.Context, quote *models.Quote, project *models.Project, orders []*models.PurchaseOrder) error {
	writeAll := func(sc context.Context) error {
		if _, err := repository.Collection(repository.ProjectsCollection).InsertOne(sc, project); err != nil {
			return err
		}
		for _, po := range orders {
			if _, err := repository.Collection(repository.PurchaseOrdersCollection).InsertOne(sc, po); err != nil {
				return err
			}
		}
		now := time.Now()
		if _, err := repository.Collection(repository.QuotesCollection).UpdateOne(
			sc,
			bson.M{"_id": quote.ID},
			bson.M{"$set": bson.M{"convertedProjectId": project.ID, "updatedAt": now}},
		); err != nil {
			return err
		}
		if !quote.LeadID.IsZero() {
			if _, err := repository.Collection(repository.LeadsCollection).UpdateOne(
				sc,
				bson.M{"_id": quote.LeadID},
				bson.M{"$set": bson.M{"stage": models.LeadStageWon, "updatedAt": now}},
			); err != nil {
				return err
			}
		}
		return nil
	}

	err := repository.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		return writeAll(sc)
	})
	if err == nil {
		return nil
	}
	if !repository.IsTransactionUnsupported(err) {
		utils.Logger.Error().Err(err).Str("quoteNo", quote.QuoteNo).Msg("转换事务提交失败")
		return utils.CreatePersistenceError("保存转换结果失败")
	}

	// 单机部署：顺序写入，失败时回收已插入的文档
	utils.Logger.Warn().Str("quoteNo", quote.QuoteNo).Msg("当前部署不支持事务，使用补偿写入")
	if err := writeAll(ctx); err != nil {
		compensateConversion(ctx, project, orders)
		utils.Logger.Error().Err(err).Str("quoteNo", quote.QuoteNo).Msg("补偿写入失败，已回收文档")
		return utils.CreatePersistenceError("保存转换结果失败")
	}
	return nil
}

// compensateConversion 回收转换已插入的项目和采购单
func compensateConversion(ctx context.Context, project *models.Project, orders []*models.PurchaseOrder) {
	if _, err := repository.Collection(repository.ProjectsCollection).DeleteOne(ctx, bson.M{"_id": project.ID}); err != nil {
		utils.Logger.Error().Err(err).Str("projectNo", project.ProjectNo).Msg("回收项目文档失败")
	}
	ids := make([]primitive.ObjectID, 0, len(orders))
	for _, po := range orders {
		ids = append(ids, po.ID)
	}
	if len(ids) > 0 {
		if _, err := repository.Collection(repository.PurchaseOrdersCollection).
			DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
			utils.Logger.Error().Err(err).Msg("回收采购单文档失败")
		}
	}
}

// 6. 删除报价单
func DeleteQuote(c *gin.Context) {
	quoteID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(quoteID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的报价单ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var quote models.Quote
	err = repository.Collection(repository.QuotesCollection).
		FindOne(ctx, bson.M{"_id": objID}).Decode(&quote)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("报价单"))
		} else {
			utils.HandleError(c, utils.CreatePersistenceError("查询报价单失败"))
		}
		return
	}
	if quote.IsConverted() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "报价单已转为项目，不能删除"})
		return
	}

	if _, err = repository.Collection(repository.QuotesCollection).DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("删除报价单失败"))
		return
	}

	utils.SuccessResponse(c, nil, "删除报价单成功")
}
