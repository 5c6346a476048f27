package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"stayfinder-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "stayfinder_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db
	return Migrate(db)
}

// Migrate runs AutoMigrate in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Host{},
		&models.Guest{},
		&models.Property{},
		&models.Addon{},
		&models.Booking{},
		&models.BookingAddon{},
		&models.Payment{},
	)
}

func amenitiesJSON(items ...string) datatypes.JSON {
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}

func intPtr(n int) *int { return &n }

// SeedDatabase loads demo hosts, listings and add-ons. Every block counts
// first and creates only when empty, so re-running is harmless.
func SeedDatabase(db *gorm.DB) error {
	// ---------------- Hosts ----------------
	var hostCount int64
	db.Model(&models.Host{}).Count(&hostCount)
	if hostCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("SEED_HOST_PASSWORD", "host12345")), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed host password: %w", err)
		}
		hosts := []models.Host{
			{FullName: "Asha Nair", Email: "asha@stayfinder.local", Password: string(hash)},
			{FullName: "Rohan Mehta", Email: "rohan@stayfinder.local", Password: string(hash)},
		}
		if err := db.Create(&hosts).Error; err != nil {
			return fmt.Errorf("failed to seed hosts: %w", err)
		}
		log.Println("Hosts seeded")
	}

	// ---------------- Properties ----------------
	var propCount int64
	db.Model(&models.Property{}).Count(&propCount)
	if propCount == 0 {
		var firstHost models.Host
		if err := db.Order("id").First(&firstHost).Error; err != nil {
			return fmt.Errorf("failed to load seed host: %w", err)
		}

		properties := []models.Property{
			{
				HostID:      firstHost.ID,
				Title:       "Seaview Villa Anjuna",
				Description: "Three-room villa five minutes from Anjuna beach.",
				City:        "Goa",
				NightlyRate: 5500,
				Currency:    "INR",
				TotalRooms:  intPtr(3),
				Latitude:    15.5736,
				Longitude:   73.7407,
				Amenities:   amenitiesJSON("wifi", "pool", "kitchen", "parking"),
			},
			{
				HostID:      firstHost.ID,
				Title:       "Heritage Haveli Jaipur",
				Description: "Restored haveli near the old city walls.",
				City:        "Jaipur",
				NightlyRate: 8200,
				Currency:    "INR",
				TotalRooms:  intPtr(6),
				Latitude:    26.9124,
				Longitude:   75.7873,
				Amenities:   amenitiesJSON("wifi", "breakfast", "ac"),
			},
			{
				HostID:      firstHost.ID,
				Title:       "Budget Stay Majnu ka Tilla",
				Description: "No-frills room for overnight transit.",
				City:        "Delhi",
				NightlyRate: 850,
				Currency:    "INR",
				Amenities:   amenitiesJSON("wifi"),
			},
		}
		if err := db.Create(&properties).Error; err != nil {
			return fmt.Errorf("failed to seed properties: %w", err)
		}
		log.Println("Properties seeded")
	}

	// ---------------- Add-ons ----------------
	var addonCount int64
	db.Model(&models.Addon{}).Count(&addonCount)
	if addonCount == 0 {
		addons := []models.Addon{
			{Name: "Breakfast", Price: 300, PerPerson: true, PerDay: true, Active: true},
			{Name: "Airport pickup", Price: 1200, Active: true},
			{Name: "Extra bed", Price: 500, PerDay: true, Active: true},
			{Name: "Guided city tour", Price: 900, PerPerson: true, Active: true},
		}
		if err := db.Create(&addons).Error; err != nil {
			return fmt.Errorf("failed to seed addons: %w", err)
		}
		log.Println("Add-ons seeded")
	}

	return nil
}
