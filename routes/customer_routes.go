package routes

import (
	"github.com/BerniceZTT/bms_end/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterCustomerRoutes(router *gin.Engine) {

	customerGroup := router.Group("/api/customers")

	customerGroup.GET("/", controllers.GetAllCustomers)
	customerGroup.POST("/", controllers.CreateCustomer)
	customerGroup.PUT("/:id", controllers.UpdateCustomer)
	customerGroup.DELETE("/:id", controllers.DeleteCustomer)
}
