package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"teabar/internal/auth"
	"teabar/internal/config"
	"teabar/internal/database"
	"teabar/internal/handlers"
	"teabar/internal/middleware"
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
		log.Println("⚠️ user index warning:", err)
	}
	if err := database.EnsureMenuItemIndexes(db); err != nil {
		log.Println("⚠️ menu item index warning:", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Println("⚠️ order index warning:", err)
	}

	hasher := auth.NewBcryptHasher()

	r := gin.Default()

	r.POST("/api/auth/register", handlers.Register(db, hasher, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/api/auth/login", handlers.Login(db, hasher, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.GET("/api/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

	r.GET("/api/menu", handlers.GetMenu(db))
	r.POST("/api/menu", handlers.CreateMenuItem(db))
	r.GET("/api/menu/:id", handlers.GetMenuItem(db))
	r.PUT("/api/menu/:id", handlers.UpdateMenuItem(db))
	r.DELETE("/api/menu/:id", handlers.DeleteMenuItem(db))

	r.GET("/api/orders", handlers.GetOrders(db))
	r.POST("/api/orders", handlers.CreateOrder(db))
	r.GET("/api/orders/:id", handlers.GetOrder(db))
	r.PUT("/api/orders/:id", handlers.UpdateOrder(db))

	r.POST("/api/payments", handlers.CreatePayment(db))

	r.PATCH("/api/users/:id", handlers.UpdateUserProfile(db))

	r.GET("/api/departments", handlers.GetDepartments())

	cart := r.Group("/api/cart")
	{
		cart.GET("", handlers.GetCart(db, config.AppEnv.JWTSecret))
		cart.DELETE("", handlers.ClearCart(db, config.AppEnv.JWTSecret))
		cart.POST("/items", handlers.AddToCart(db, config.AppEnv.JWTSecret))
		cart.PUT("/items/:id", handlers.SetCartItemQuantity(db, config.AppEnv.JWTSecret))
		cart.DELETE("/items/:id", handlers.RemoveFromCart(db, config.AppEnv.JWTSecret))
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/stats", handlers.GetAdminStats(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
