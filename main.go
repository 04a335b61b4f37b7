package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/adityarajmishra/ShopEase/checkout"
	"github.com/adityarajmishra/ShopEase/logging"
	"github.com/adityarajmishra/ShopEase/middleware"
	"github.com/adityarajmishra/ShopEase/models"
	"github.com/adityarajmishra/ShopEase/notify"
	"github.com/adityarajmishra/ShopEase/payment"
	"github.com/adityarajmishra/ShopEase/routes"
	"github.com/adityarajmishra/ShopEase/store"
)

const defaultCartExpiryHours = 24

func main() {
	// Load environment variables
	_ = godotenv.Load()

	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./logs/app.log"
	}
	logger := logging.Init("shopease", logFile)

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Discount{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentRecord{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Checkout engine wiring
	hub := notify.NewHub()
	notifier := notify.Fanout{
		&notify.Logger{Log: logging.New("events")},
		hub,
	}
	engine := checkout.NewEngine(
		store.NewGorm(db),
		payment.NewSimulatorFromEnv(),
		notifier,
		nil, // wall clock
	)

	// Gin setup
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup routes
	routes.SetupRoutes(r, db, engine, hub)

	// Expired carts are swept hourly in the background
	go runCartSweeper(engine, cartExpiryHours())

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	cfg := &gorm.Config{TranslateError: true}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), cfg)
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	return db
}

func cartExpiryHours() int {
	if v := os.Getenv("CART_EXPIRY_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			return hours
		}
	}
	return defaultCartExpiryHours
}

// runCartSweeper deletes carts idle past their expiry on a fixed interval.
func runCartSweeper(engine *checkout.Engine, expiryHours int) {
	logger := logging.New("cart-sweeper")
	for {
		time.Sleep(time.Hour)

		removed, err := engine.SweepExpiredCarts(context.Background(), expiryHours)
		if err != nil {
			logger.Error("sweep failed", "error", err.Error())
			continue
		}
		if removed > 0 {
			logger.Info("expired carts removed", "count", removed)
		}
	}
}
