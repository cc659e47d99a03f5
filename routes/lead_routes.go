package routes

import (
	"github.com/BerniceZTT/bms_end/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterLeadRoutes(router *gin.Engine) {

	leadGroup := router.Group("/api/leads")

	leadGroup.GET("/", controllers.GetAllLeads)
	leadGroup.POST("/", controllers.CreateLead)
	leadGroup.PATCH("/:id/stage", controllers.UpdateLeadStage)
	leadGroup.PUT("/:id/bom", controllers.UpdateLeadBOM)
	leadGroup.POST("/:id/quote", controllers.CreateQuoteFromLead)
	leadGroup.DELETE("/:id", controllers.DeleteLead)
}
