package main

import (
	"chaat-factory-backend/pkg/config"
	"chaat-factory-backend/pkg/database"
	"chaat-factory-backend/pkg/models"
	"chaat-factory-backend/pkg/utils"
	"log"
	"os"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if err := database.AutoMigrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	seedManager()
	seedFactoryCatalog()
}

func seedManager() {
	email := os.Getenv("SEED_MANAGER_EMAIL")
	if email == "" {
		email = "manager@chaatfactory.in"
	}
	password := os.Getenv("SEED_MANAGER_PASSWORD")
	if password == "" {
		password = "manager123"
	}

	var existing models.Profile
	if err := database.DB.Where("role = ?", models.RoleManager).First(&existing).Error; err == nil {
		log.Printf("Manager %s already exists", existing.Email)
		return
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	manager := models.Profile{
		Name:     "Factory Manager",
		Email:    email,
		Password: &hashedPassword,
		Role:     models.RoleManager,
	}

	if err := database.DB.Create(&manager).Error; err != nil {
		log.Fatal("Failed to create manager:", err)
	}

	log.Printf("✅ Manager %s created successfully", email)
}

// seedFactoryCatalog creates a factory row for every predefined menu item
// that doesn't already have one.
func seedFactoryCatalog() {
	for _, menuItem := range models.PredefinedMenu {
		var existing models.FactoryItem
		if err := database.DB.Where("LOWER(name) = LOWER(?)", menuItem.Name).First(&existing).Error; err == nil {
			continue
		}

		item := models.FactoryItem{
			Name:   menuItem.Name,
			Price:  menuItem.Price,
			Stock:  200,
			Status: models.StockStatusIn,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			log.Printf("Failed to seed factory item %s: %v", menuItem.Name, err)
			continue
		}
		log.Printf("✅ Factory item %s seeded", menuItem.Name)
	}
}
