package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
)

// DB is the shared GORM handle.
var DB *gorm.DB

// ConnectConfig holds the Postgres connection settings.
type ConnectConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
	TimeZone string
}

// Connect opens the Postgres connection and migrates the schema.
func Connect(cfg ConnectConfig) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return DB.AutoMigrate(
		&models.Shipment{},
		&models.TimelineEvent{},
		&models.ShipmentScan{},
		&models.FlightBooking{},
	)
}

// Close releases the underlying connection pool.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
