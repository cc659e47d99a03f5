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

// 1. 获取项目列表，支持按状态过滤
func GetAllProjects(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	collection := repository.Collection(repository.ProjectsCollection)
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取项目列表失败"})
		return
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err = cursor.All(ctx, &projects); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "解析项目列表失败"})
		return
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: projects})
}

// 2. 获取项目详情（带关联采购单）
func GetProjectDetail(c *gin.Context) {
	projectID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var project models.Project
	err = repository.Collection(repository.ProjectsCollection).
		FindOne(ctx, bson.M{"_id": objID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("项目"))
		} else {
			utils.HandleError(c, utils.CreatePersistenceError("查询项目失败"))
		}
		return
	}

	cursor, err := repository.Collection(repository.PurchaseOrdersCollection).
		Find(ctx, bson.M{"projectId": objID}, options.Find().SetSort(bson.M{"orderNo": 1}))
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("查询关联采购单失败"))
		return
	}
	defer cursor.Close(ctx)

	orders := []models.PurchaseOrder{}
	if err = cursor.All(ctx, &orders); err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("解析关联采购单失败"))
		return
	}

	c.JSON(http.StatusOK, models.ProjectDetailResponse{
		Success:        true,
		Project:        project,
		PurchaseOrders: orders,
	})
}

// 3. 项目客户回款
func PayProject(c *gin.Context) {
	projectID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID格式"})
		return
	}

	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var project models.Project
	err = repository.Collection(repository.ProjectsCollection).
		FindOne(ctx, bson.M{"_id": objID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("项目"))
		} else {
			utils.HandleError(c, utils.CreatePersistenceError("查询项目失败"))
		}
		return
	}

	if err := service.ApplyCustomerPayment(&project, req.Amount, time.Now()); err != nil {
		utils.HandleError(c, err)
		return
	}

	update := bson.M{"$set": bson.M{
		"advanceReceived":  project.AdvanceReceived,
		"balanceRemaining": project.BalanceRemaining,
		"status":           project.Status,
		"completedAt":      project.CompletedAt,
		"updatedAt":        project.UpdatedAt,
	}}
	if _, err = repository.Collection(repository.ProjectsCollection).
		UpdateOne(ctx, bson.M{"_id": objID}, update); err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("保存回款失败"))
		return
	}

	utils.Logger.Info().
		Str("projectNo", project.ProjectNo).
		Float64("amount", req.Amount).
		Str("status", string(project.Status)).
		Msg("项目回款成功")
	utils.SuccessResponse(c, project, "回款成功")
}
