package routes

import (
	"github.com/BerniceZTT/bms_end/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterQuoteRoutes(router *gin.Engine) {

	quoteGroup := router.Group("/api/quotes")

	quoteGroup.GET("/", controllers.GetAllQuotes)
	quoteGroup.GET("/:id", controllers.GetQuoteDetail)
	quoteGroup.POST("/", controllers.CreateQuote)
	quoteGroup.POST("/:id/convert", controllers.ConvertQuote)
	quoteGroup.DELETE("/:id", controllers.DeleteQuote)
}
