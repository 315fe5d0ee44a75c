package main

import (
	"log"

	"api/config"
	"api/database"
	"api/middleware"
	v1 "api/routes/v1"
	"api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Fan Challenge Platform API
// @version 1.0
// @description Admin API for fan prediction challenges: entries, verifiable winner selection and prize distribution
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	database.InitDB()
	database.InitRedis()

	middleware.UpdateSystemMetrics()
	services.StartMetricScheduler()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.ClientUrl},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1.Register(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Listening on :%s", config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
