package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BerniceZTT/bms_end/models"
	"github.com/BerniceZTT/bms_end/repository"
	"github.com/BerniceZTT/bms_end/utils"
)

// 1. 获取线索列表，支持按阶段过滤
func GetAllLeads(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter := bson.M{}
	if stage := c.Query("stage"); stage != "" {
		if !models.IsValidLeadStage(models.LeadStage(stage)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的线索阶段"})
			return
		}
		filter["stage"] = stage
	}

	collection := repository.Collection(repository.LeadsCollection)
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取线索列表失败"})
		return
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err = cursor.All(ctx, &leads); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "解析线索列表失败"})
		return
	}

	c.JSON(http.StatusOK, models.LeadListResponse{Leads: leads})
}

// 2. 创建线索
func CreateLead(c *gin.Context) {
	var req models.LeadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}

	stage := req.Stage
	if stage == "" {
		stage = models.LeadStageInitialDiscussion
	}
	if !models.IsValidLeadStage(stage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的线索阶段"})
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

	leadNo, err := repository.NextSequenceCode(ctx, repository.LeadNoPrefix)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("生成线索编号失败"))
		return
	}

	now := time.Now()
	lead := models.Lead{
		LeadNo:       leadNo,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Title:        req.Title,
		Stage:        stage,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := repository.Collection(repository.LeadsCollection).InsertOne(ctx, lead)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("创建线索失败"))
		return
	}
	lead.ID = result.InsertedID.(primitive.ObjectID)

	utils.Logger.Info().Str("leadNo", leadNo).Str("customer", customer.Name).Msg("创建线索成功")
	utils.SuccessResponse(c, lead, "创建线索成功", http.StatusCreated)
}

// 3. 移动看板阶段
func UpdateLeadStage(c *gin.Context) {
	leadID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(leadID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的线索ID格式"})
		return
	}

	var req models.LeadStageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}
	if !models.IsValidLeadStage(req.Stage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的线索阶段"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := repository.Collection(repository.LeadsCollection)
	result, err := collection.UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"stage": req.Stage, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("更新线索阶段失败"))
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("线索"))
		return
	}

	utils.SuccessResponse(c, nil, "更新线索阶段成功")
}

// 4. 更新线索BOM
func UpdateLeadBOM(c *gin.Context) {
	leadID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(leadID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的线索ID格式"})
		return
	}

	var req models.LeadBOMUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}
	for _, item := range req.BOM {
		if !utils.IsValidAmount(item.UnitPrice) {
			utils.HandleError(c, utils.CreateInvalidAmountError("BOM单价必须为有限的非负数"))
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := repository.Collection(repository.LeadsCollection)
	result, err := collection.UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{
			"bom":                 req.BOM,
			"profitMarginPercent": req.ProfitMarginPercent,
			"updatedAt":           time.Now(),
		}},
	)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("更新线索BOM失败"))
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("线索"))
		return
	}

	utils.SuccessResponse(c, nil, "更新线索BOM成功")
}

// 5. 删除线索
func DeleteLead(c *gin.Context) {
	leadID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(leadID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的线索ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := repository.Collection(repository.LeadsCollection)
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("删除线索失败"))
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("线索"))
		return
	}

	utils.SuccessResponse(c, nil, "删除线索成功")
}
