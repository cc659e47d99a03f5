package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BerniceZTT/bms_end/models"
	"github.com/BerniceZTT/bms_end/repository"
	"github.com/BerniceZTT/bms_end/service"
	"github.com/BerniceZTT/bms_end/utils"
)

// GetFinanceSummary 获取财务汇总
// 每次从项目和独立采购单实时聚合，不读任何缓存数据
func GetFinanceSummary(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := repository.Collection(repository.ProjectsCollection).Find(ctx, bson.M{})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("查询项目失败"))
		return
	}
	var projects []models.Project
	if err = cursor.All(ctx, &projects); err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("解析项目失败"))
		return
	}

	// 手工创建的独立采购单
	poCursor, err := repository.Collection(repository.PurchaseOrdersCollection).
		Find(ctx, bson.M{"projectId": bson.M{"$exists": false}})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("查询采购单失败"))
		return
	}
	var unlinked []models.PurchaseOrder
	if err = poCursor.All(ctx, &unlinked); err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("解析采购单失败"))
		return
	}

	summary := service.ComputeFinanceSummary(projects, unlinked)
	utils.SuccessResponse(c, summary, "")
}

// GetDashboardStats 获取数据看板统计信息
func GetDashboardStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats := models.DashboardStats{
		LeadsByStage: make(map[models.LeadStage]int64),
	}

	var err error
	stats.TotalItems, err = repository.Collection(repository.InventoryCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("统计库存物料失败"))
		return
	}
	stats.TotalSuppliers, err = repository.Collection(repository.SuppliersCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("统计供应商失败"))
		return
	}
	stats.TotalCustomers, err = repository.Collection(repository.CustomersCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("统计客户失败"))
		return
	}
	stats.PendingOrders, err = repository.Collection(repository.PurchaseOrdersCollection).
		CountDocuments(ctx, bson.M{"status": models.PurchaseOrderStatusPending})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("统计待付款采购单失败"))
		return
	}

	// 库存总值：Σ(数量×单价)
	pipeline := []bson.M{
		{"$project": bson.M{"lineValue": bson.M{"$multiply": []interface{}{"$quantity", "$unitPrice"}}}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$lineValue"}}},
	}
	aggCursor, err := repository.Collection(repository.InventoryCollection).Aggregate(ctx, pipeline)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("统计库存总值失败"))
		return
	}
	var aggResult []struct {
		Total float64 `bson:"total"`
	}
	if err = aggCursor.All(ctx, &aggResult); err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("解析库存总值失败"))
		return
	}
	if len(aggResult) > 0 {
		stats.TotalInventoryValue = utils.Round2(aggResult[0].Total)
	}

	// 各阶段线索数
	stagePipeline := []bson.M{
		{"$group": bson.M{"_id": "$stage", "count": bson.M{"$sum": 1}}},
	}
	stageCursor, err := repository.Collection(repository.LeadsCollection).Aggregate(ctx, stagePipeline)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("统计线索失败"))
		return
	}
	var stageCounts []struct {
		Stage models.LeadStage `bson:"_id"`
		Count int64            `bson:"count"`
	}
	if err = stageCursor.All(ctx, &stageCounts); err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("解析线索统计失败"))
		return
	}
	for _, sc := range stageCounts {
		stats.LeadsByStage[sc.Stage] = sc.Count
	}

	// 最近入库的物料
	recentOpts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(5)
	recentCursor, err := repository.Collection(repository.InventoryCollection).Find(ctx, bson.M{}, recentOpts)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("查询最近物料失败"))
		return
	}
	stats.RecentItems = []models.InventoryItem{}
	if err = recentCursor.All(ctx, &stats.RecentItems); err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("解析最近物料失败"))
		return
	}

	utils.SuccessResponse(c, stats, "")
}
