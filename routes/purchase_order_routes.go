package routes

import (
	"github.com/BerniceZTT/bms_end/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterPurchaseOrderRoutes(router *gin.Engine) {

	orderGroup := router.Group("/api/purchase-orders")

	orderGroup.GET("/", controllers.GetAllPurchaseOrders)
	orderGroup.GET("/:id", controllers.GetPurchaseOrderDetail)
	orderGroup.POST("/", controllers.CreatePurchaseOrder)
	orderGroup.POST("/:id/payments", controllers.PayPurchaseOrder)
	orderGroup.DELETE("/:id", controllers.DeletePurchaseOrder)
}
