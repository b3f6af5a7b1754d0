package database

import (
	"chaat-factory-backend/pkg/config"
	"chaat-factory-backend/pkg/models"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDatabase initializes the database connection
func InitDatabase() error {
	var err error

	gormConfig := &gorm.Config{
		PrepareStmt: false,
	}

	// Development mode - verbose logging
	if config.IsDevelopment() {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		// Production mode - only errors
		gormConfig.Logger = logger.Default.LogMode(logger.Error)
	}

	// Connect to PostgreSQL with implicit prepared statements disabled
	DB, err = gorm.Open(postgres.New(postgres.Config{
		DSN:                  config.AppConfig.DatabaseURL,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	log.Println("✅ Database connection established")

	return nil
}

// AutoMigrate runs auto-migration for all models
func AutoMigrate() error {
	log.Println("🔄 Running database migrations...")

	err := DB.AutoMigrate(
		&models.Profile{},
		&models.FactoryItem{},
		&models.KioskItem{},
		&models.Order{},
		&models.PurchaseOrder{},
		&models.ClockLog{},
		&models.WastageRecord{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("✅ Database migrations completed")

	createIndexes()

	return nil
}

// createIndexes creates the indexes AutoMigrate cannot express
func createIndexes() {
	log.Println("🔄 Creating additional indexes...")

	// At most one manager account, enforced at the database so concurrent
	// signups cannot both pass an application-level existence check.
	DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "profiles_single_manager_key" ON "profiles"("role") WHERE "role" = 'MANAGER'`)

	// One catalog row per kiosk per item name, matched case-insensitively.
	DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "kiosk_items_kiosk_name_key" ON "kiosk_items"("kiosk_id", LOWER("item_name"))`)

	// Report query paths
	DB.Exec(`CREATE INDEX IF NOT EXISTS "orders_kiosk_date_idx" ON "orders"("kiosk_id", "order_date")`)
	DB.Exec(`CREATE INDEX IF NOT EXISTS "clock_logs_kiosk_date_idx" ON "clock_logs"("kiosk_id", "log_date")`)
	DB.Exec(`CREATE INDEX IF NOT EXISTS "purchase_orders_kiosk_status_idx" ON "purchase_orders"("kiosk_id", "status")`)

	log.Println("✅ Additional indexes created")
}

// CloseDatabase closes the database connection
func CloseDatabase() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("✅ Database connection closed")
	}
}
