package routes

import (
	"rescue_connect/internal/controllers"
	"rescue_connect/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ReceiveRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/donations/requests/:donorId", controllers.ListDonorRequests)
	}

	receiver := r.Group("/api")
	receiver.Use(middleware.RequireAuth())
	{
		receiver.POST("/recievers/donations/request/:donationId", controllers.RequestDonation)
	}
}
