package main

import (
	"log"
	"net/http"

	"rescue_connect/internal/config"
	"rescue_connect/internal/controllers"
	"rescue_connect/internal/logger"
	"rescue_connect/internal/middleware"
	"rescue_connect/internal/routes"
	"rescue_connect/internal/storage"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Upload store for food photos and proof documents
	store, err := storage.New(config.GetEnv("UPLOAD_DIR", "./uploads"))
	if err != nil {
		log.Fatalf("failed to init upload store: %v", err)
	}
	controllers.SetUploads(store)

	// Setup Gin router
	r := routes.SetupRouter(store)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	port := config.GetEnv("PORT", "5000")
	log.Println("🚀 Server running at :" + port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, handler))
}
