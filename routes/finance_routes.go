package routes

import (
	"github.com/BerniceZTT/bms_end/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterFinanceRoutes(router *gin.Engine) {

	financeGroup := router.Group("/api/finance")
	financeGroup.GET("/summary", controllers.GetFinanceSummary)

	dashboardGroup := router.Group("/api/dashboard")
	dashboardGroup.GET("/stats", controllers.GetDashboardStats)
}
