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

// 1. 获取客户列表
func GetAllCustomers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := repository.Collection(repository.CustomersCollection)
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取客户列表失败"})
		return
	}
	defer cursor.Close(ctx)

	customers := []models.Customer{}
	if err = cursor.All(ctx, &customers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "解析客户列表失败"})
		return
	}

	c.JSON(http.StatusOK, models.CustomerListResponse{Customers: customers})
}

// 2. 创建客户
func CreateCustomer(c *gin.Context) {
	var req models.CustomerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	customer := models.Customer{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	collection := repository.Collection(repository.CustomersCollection)
	result, err := collection.InsertOne(ctx, customer)
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("创建客户失败"))
		return
	}
	customer.ID = result.InsertedID.(primitive.ObjectID)

	utils.Logger.Info().Str("customerId", customer.ID.Hex()).Str("name", customer.Name).Msg("创建客户成功")
	utils.SuccessResponse(c, customer, "创建客户成功", http.StatusCreated)
}

// 3. 更新客户
func UpdateCustomer(c *gin.Context) {
	customerID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的客户ID格式"})
		return
	}

	var req models.CustomerUpdateRequest
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
	if req.Phone != "" {
		updateData["phone"] = req.Phone
	}
	if req.Email != "" {
		updateData["email"] = req.Email
	}
	if req.Address != "" {
		updateData["address"] = req.Address
	}
	if req.Notes != "" {
		updateData["notes"] = req.Notes
	}

	collection := repository.Collection(repository.CustomersCollection)
	result, err := collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateData})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("更新客户失败"))
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("客户"))
		return
	}

	// 同步项目/报价单上的冗余客户名
	if req.Name != "" {
		sync := bson.M{"$set": bson.M{"customerName": req.Name, "updatedAt": time.Now()}}
		if _, err = repository.Collection(repository.ProjectsCollection).UpdateMany(ctx, bson.M{"customerId": objID}, sync); err != nil {
			utils.Logger.Error().Err(err).Str("customerId", customerID).Msg("同步项目客户名失败")
		}
		if _, err = repository.Collection(repository.QuotesCollection).UpdateMany(ctx, bson.M{"customerId": objID}, sync); err != nil {
			utils.Logger.Error().Err(err).Str("customerId", customerID).Msg("同步报价单客户名失败")
		}
	}

	utils.SuccessResponse(c, nil, "更新客户成功")
}

// 4. 删除客户
func DeleteCustomer(c *gin.Context) {
	customerID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的客户ID格式"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 有关联报价单或项目时拒绝删除
	for _, coll := range []string{repository.QuotesCollection, repository.ProjectsCollection, repository.LeadsCollection} {
		count, err := repository.Collection(coll).CountDocuments(ctx, bson.M{"customerId": objID})
		if err != nil {
			utils.HandleError(c, utils.CreatePersistenceError("检查客户引用失败"))
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "客户存在关联的线索/报价单/项目，不能删除"})
			return
		}
	}

	collection := repository.Collection(repository.CustomersCollection)
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, utils.CreatePersistenceError("删除客户失败"))
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("客户"))
		return
	}

	utils.SuccessResponse(c, nil, "删除客户成功")
}

// findCustomerByID 按ID查询客户
func findCustomerByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	var customer models.Customer
	err := repository.Collection(repository.CustomersCollection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.CreateNotFoundError("客户")
		}
		return nil, utils.CreatePersistenceError("查询客户失败")
	}
	return &customer, nil
}
