package routes

import (
	"github.com/BerniceZTT/bms_end/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterSupplierRoutes(router *gin.Engine) {

	supplierGroup := router.Group("/api/suppliers")

	supplierGroup.GET("/", controllers.GetAllSuppliers)
	supplierGroup.POST("/", controllers.CreateSupplier)
	supplierGroup.PUT("/:id", controllers.UpdateSupplier)
	supplierGroup.DELETE("/:id", controllers.DeleteSupplier)
}
