package routes

import (
	"rescue_connect/internal/controllers"
	"rescue_connect/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DonationRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// Browsing pending donations is open to the public role
		api.GET("/donations/pending", controllers.ListPendingDonations)
		api.GET("/user-donations/:userId", controllers.ListUserDonations)
	}

	donor := r.Group("/api")
	donor.Use(middleware.RequireAuth())
	{
		donor.POST("/donations", controllers.CreateDonation)
	}
}
