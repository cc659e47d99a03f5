package routes

import (
	"github.com/BerniceZTT/bms_end/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterInventoryRoutes(router *gin.Engine) {

	inventoryGroup := router.Group("/api/inventory")

	inventoryGroup.GET("/", controllers.GetInventory)
	inventoryGroup.POST("/", controllers.CreateInventoryItem)
	inventoryGroup.PUT("/:id", controllers.UpdateInventoryItem)
	inventoryGroup.DELETE("/:id", controllers.DeleteInventoryItem)
}
