package routes

import (
	"github.com/BerniceZTT/bms_end/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterProjectRoutes(router *gin.Engine) {

	projectGroup := router.Group("/api/projects")

	projectGroup.GET("/", controllers.GetAllProjects)
	projectGroup.GET("/:id", controllers.GetProjectDetail)
	projectGroup.POST("/:id/payments", controllers.PayProject)
}
