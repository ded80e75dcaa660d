package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/router"
	"github.com/ordelo-app/ordelo/services"
	"github.com/ordelo-app/ordelo/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := utils.OpenDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Sweep tier berkala; interval dalam jam, default 24.
	sweepInterval := 24 * time.Hour
	if raw := os.Getenv("TIER_SWEEP_INTERVAL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			sweepInterval = time.Duration(hours) * time.Hour
		}
	}
	tierMonitor := services.NewTierMonitor(db, sweepInterval)
	tierMonitor.Start()
	defer tierMonitor.Stop()

	r := router.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Table{},
		&models.Customer{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.ModifierGroup{},
		&models.ModifierOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemModifier{},
		&models.Tier{},
		&models.TierBenefit{},
		&models.Reward{},
		&models.ActivityLog{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
