package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}

	r := gin.Default()

	user := r.Group("/v1/user")
	{
		user.POST("/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
		user.POST("/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

		authed := user.Group("")
		authed.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
		{
			authed.GET("/details", handlers.GetUserDetails(db))
			authed.GET("/statistics", handlers.GetUserStatistics(db))
		}
	}

	order := r.Group("/v1/order")
	order.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		order.POST("/create/form", handlers.CreateOrderForm(db))
		order.POST("/create/bulk", handlers.CreateOrderBulk(db))
		order.GET("/received/list", handlers.ListReceivedOrders(db))
		order.PUT("/:orderId", handlers.UpdateOrder(db))
		order.DELETE("/:orderId", handlers.DeleteOrder(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
