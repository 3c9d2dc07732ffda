package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"rescue_connect/internal/storage"
)

func SetupRouter(store *storage.Store) *gin.Engine {
	r := gin.New()

	// Recovery + structured request logging
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	// Uploaded photos and proof documents are referenced by relative path
	r.Static("/uploads", store.Root())

	AuthRoutes(r)
	DonationRoutes(r)
	ReceiveRoutes(r)
	AdminRoutes(r)

	return r
}
