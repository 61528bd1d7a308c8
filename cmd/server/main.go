package main

import (
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/redis"
	"storefront/internal/repository"
	"storefront/internal/services"
	"storefront/pkg/notify"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Optional status webhook
	var notifier services.StatusNotifier
	if cfg.WebhookURL != "" {
		notifier = notify.NewClient(cfg.WebhookURL, cfg.WebhookUsername, cfg.WebhookPassword)
	}

	// Initialize services
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo)
	couponService := services.NewCouponService(couponRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, couponService, services.OrderConfig{
		Pricing: services.PricingConfig{
			TaxRate:               cfg.TaxRate,
			ShippingFee:           cfg.ShippingFee,
			FreeShippingThreshold: cfg.FreeShippingThreshold,
		},
		PrepaidMethods:            cfg.PrepaidPaymentMethods,
		AllowArbitraryTransitions: cfg.AllowArbitraryTransitions,
		MarkCODPaidOnDelivery:     cfg.MarkCODPaidOnDelivery,
	}, notifier)

	sessionTTL := time.Duration(cfg.SessionTTL) * time.Second

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, redisClient, sessionTTL)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	couponHandler := handlers.NewCouponHandler(couponService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		// Auth
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/profile", middleware.RequireAuth(redisClient), authHandler.Profile)

		// Catalog
		api.GET("/products", productHandler.GetAllProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.POST("/products", middleware.RequireAdmin(redisClient), productHandler.CreateProduct)
		api.PUT("/products/:id", middleware.RequireAdmin(redisClient), productHandler.UpdateProduct)
		api.DELETE("/products/:id", middleware.RequireAdmin(redisClient), productHandler.DeleteProduct)

		// Orders
		api.POST("/orders", middleware.OptionalAuth(redisClient), orderHandler.CreateOrder)
		api.GET("/orders/track", orderHandler.TrackOrder)
		api.GET("/orders/myorders", middleware.RequireAuth(redisClient), orderHandler.GetMyOrders)
		api.GET("/orders/:id", middleware.RequireAuth(redisClient), orderHandler.GetOrder)
		api.GET("/orders", middleware.RequireAdmin(redisClient), orderHandler.GetAllOrders)
		api.PUT("/orders/:id/status", middleware.RequireAdmin(redisClient), orderHandler.UpdateStatus)

		// Coupons (admin)
		api.GET("/coupons", middleware.RequireAdmin(redisClient), couponHandler.GetAllCoupons)
		api.POST("/coupons", middleware.RequireAdmin(redisClient), couponHandler.CreateCoupon)
		api.PUT("/coupons/:id", middleware.RequireAdmin(redisClient), couponHandler.UpdateCoupon)
		api.DELETE("/coupons/:id", middleware.RequireAdmin(redisClient), couponHandler.DeleteCoupon)

		// Users (admin)
		api.GET("/users", middleware.RequireAdmin(redisClient), userHandler.GetAllUsers)
		api.GET("/users/:id", middleware.RequireAdmin(redisClient), userHandler.GetUser)
		api.DELETE("/users/:id", middleware.RequireAdmin(redisClient), userHandler.DeleteUser)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
