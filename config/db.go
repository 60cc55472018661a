package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/papagsgrill/pos-app/models"
)

// InitDB opens the configured database. sqlite is the development default;
// mysql expects a full DSN in DB_SOURCE.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case "mysql":
		db, err = gorm.Open(mysql.Open(cfg.DBSource), &gorm.Config{})
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.DBSource), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate creates/updates every table the app owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.MenuCategory{},
		&models.Menu{},
		&models.MenuOption{},
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartRecord{},
		&models.OrderEvent{},
	)
}
