package main

import (
	"fmt"
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Product{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Create tables with proper schema
	fmt.Println("Creating tables...")
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Create default admin user
	fmt.Println("Creating default admin user...")
	userRepo := repository.NewUserRepository(db)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}
	admin := &models.User{
		Name:     "Administrator",
		Email:    "admin@storefront.local",
		Password: string(hashedPassword),
		Role:     string(models.RoleAdmin),
		IsActive: true,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		fmt.Println("Admin user created successfully")
		fmt.Println("Email: admin@storefront.local")
		fmt.Println("Password: admin123")
	}

	// Create sample catalog
	fmt.Println("Creating sample products...")
	productRepo := repository.NewProductRepository(db)
	products := []*models.Product{
		{Name: "Wireless Headphones", Description: "Over-ear, 30h battery", Brand: "Aural", Category: "electronics", Price: 89.99, CountInStock: 25, Image: "/images/headphones.jpg"},
		{Name: "Ceramic Mug", Description: "350ml stoneware mug", Brand: "Kiln", Category: "kitchen", Price: 12.50, CountInStock: 120, Image: "/images/mug.jpg"},
		{Name: "Canvas Backpack", Description: "20L daypack", Brand: "Trek", Category: "outdoors", Price: 45.00, CountInStock: 40, Image: "/images/backpack.jpg"},
	}
	for _, p := range products {
		if err := productRepo.Create(p); err != nil {
			log.Printf("Warning: Failed to create product %s: %v", p.Name, err)
		}
	}

	// Create sample coupons
	fmt.Println("Creating sample coupons...")
	couponRepo := repository.NewCouponRepository(db)
	expiry := time.Now().AddDate(0, 3, 0)
	maxDiscount := 20.0
	limit := 100
	coupons := []*models.Coupon{
		{Code: "WELCOME10", DiscountType: string(models.DiscountPercentage), DiscountValue: 10, MaxDiscountAmount: &maxDiscount, MinPurchaseAmount: 25, ExpiryDate: &expiry, UsageLimit: &limit, IsActive: true},
		{Code: "SHIP5", DiscountType: string(models.DiscountFixed), DiscountValue: 5, IsActive: true},
	}
	for _, coupon := range coupons {
		if err := couponRepo.Create(coupon); err != nil {
			log.Printf("Warning: Failed to create coupon %s: %v", coupon.Code, err)
		}
	}

	fmt.Println("Database initialization completed successfully!")
}
