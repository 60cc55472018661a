package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/papagsgrill/pos-app/config"
	"github.com/papagsgrill/pos-app/feed"
	"github.com/papagsgrill/pos-app/router"
	"github.com/papagsgrill/pos-app/services"
	"github.com/papagsgrill/pos-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := config.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}
	if err := config.SeedStaff(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed staff: %v", err)
	}
	if err := config.SeedMenu(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed menu: %v", err)
	}

	hub := feed.NewHub()

	monitor := services.NewOrderMonitor(db, hub)
	monitor.Interval = cfg.MonitorInterval
	monitor.Start()
	defer monitor.Stop()

	go utils.CleanupBlacklist(1 * time.Hour)

	r := router.SetupRouter(db, hub, cfg)

	utils.InfoLogger.Printf("Listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("Server error: %v", err)
	}
}
