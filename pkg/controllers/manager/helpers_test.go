package manager

import (
	"net/http/httptest"
	"strings"
	"testing"

	"chaat-factory-backend/pkg/config"
	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB swaps the package-global DB for an in-memory sqlite instance
// with the same schema and indexes the postgres migration creates.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A pooled :memory: connection would hand each conn its own database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Profile{},
		&models.FactoryItem{},
		&models.KioskItem{},
		&models.Order{},
		&models.PurchaseOrder{},
		&models.ClockLog{},
		&models.WastageRecord{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "profiles_single_manager_key" ON "profiles"("role") WHERE "role" = 'MANAGER'`)
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS "kiosk_items_kiosk_name_key" ON "kiosk_items"("kiosk_id", LOWER("item_name"))`)

	database.DB = db

	config.AppConfig = &config.Config{
		JWTSecret:          "test-secret",
		JWTExpiresIn:       "1d",
		FactoryStockPolicy: config.FactoryStockFinite,
	}

	gin.SetMode(gin.TestMode)
}

// createManager inserts the manager profile for tests
func createManager(t *testing.T) models.Profile {
	t.Helper()

	profile := models.Profile{
		Name:  "Factory Manager",
		Email: "manager@test.in",
		Role:  models.RoleManager,
	}
	if err := database.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create manager profile: %v", err)
	}
	return profile
}

// createKiosk inserts a kiosk profile for tests
func createKiosk(t *testing.T, name string) models.Profile {
	t.Helper()

	kioskName := name
	profile := models.Profile{
		Name:      name,
		Email:     strings.ToLower(strings.ReplaceAll(name, " ", "")) + "@test.in",
		Role:      models.RoleKiosk,
		KioskName: &kioskName,
	}
	if err := database.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create kiosk profile: %v", err)
	}
	return profile
}

// performJSON runs a handler with an authenticated profile, a JSON body and
// optional route params
func performJSON(t *testing.T, handler gin.HandlerFunc, profile models.Profile, body string, params ...gin.Param) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	c.Set("profile", profile)
	handler(c)
	return w
}

// performGet runs a read handler with an authenticated profile
func performGet(t *testing.T, handler gin.HandlerFunc, profile models.Profile, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Set("profile", profile)
	handler(c)
	return w
}
