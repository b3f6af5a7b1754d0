package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Factory stock policies. The schema history of this system diverged on
// whether factory stock is a finite counter or nominal/unlimited; the
// choice is an explicit deployment setting here.
const (
	FactoryStockFinite    = "finite"
	FactoryStockUnlimited = "unlimited"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// JWT
	JWTSecret    string
	JWTExpiresIn string

	// Session
	SessionSecret string

	// Security
	CookieSecure string

	// GCP Storage
	GCPProjectID                 string
	ItemImageBucket              string
	ClockPhotoBucket             string
	GoogleApplicationCredentials string

	// Inventory policy: "finite" or "unlimited" factory stock
	FactoryStockPolicy string

	// Allowed Origins
	AllowedOrigins string
}

var AppConfig *Config

// LoadConfig loads environment variables into Config struct
func LoadConfig() {
	// Load .env file if it exists (optional in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:                         getEnv("PORT", "5500"),
		Environment:                  getEnv("APP_ENV", "development"),
		DatabaseURL:                  getEnv("DATABASE_URL", ""),
		JWTSecret:                    getEnv("JWT_SECRET", ""),
		JWTExpiresIn:                 getEnv("JWT_EXPIRES_IN", "7d"),
		SessionSecret:                getEnv("SESSION_SECRET", ""),
		CookieSecure:                 getEnv("COOKIE_SECURE", "false"),
		GCPProjectID:                 getEnv("GCP_PROJECT_ID", ""),
		ItemImageBucket:              getEnv("ITEM_IMAGE_BUCKET", ""),
		ClockPhotoBucket:             getEnv("CLOCK_PHOTO_BUCKET", ""),
		GoogleApplicationCredentials: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		FactoryStockPolicy:           getEnv("FACTORY_STOCK_POLICY", FactoryStockFinite),
		AllowedOrigins:               getEnv("ALLOWED_ORIGINS", ""),
	}

	// Validate required config
	if AppConfig.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if AppConfig.FactoryStockPolicy != FactoryStockFinite && AppConfig.FactoryStockPolicy != FactoryStockUnlimited {
		log.Fatalf("FACTORY_STOCK_POLICY must be %q or %q, got %q",
			FactoryStockFinite, FactoryStockUnlimited, AppConfig.FactoryStockPolicy)
	}

	log.Println("✅ Configuration loaded successfully")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FiniteFactoryStock returns true when allocations check and decrement the
// factory counter.
func FiniteFactoryStock() bool {
	return AppConfig.FactoryStockPolicy == FactoryStockFinite
}

// IsProduction returns true if running in production mode
func IsProduction() bool {
	return AppConfig.Environment == "production"
}

// IsDevelopment returns true if running in development mode
func IsDevelopment() bool {
	return AppConfig.Environment == "development" || AppConfig.Environment == ""
}
