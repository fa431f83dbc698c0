package main

import (
	"log"
	"os"

	"eua-na-pratica-be/internal/model"
	"eua-na-pratica-be/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedPlans(db)
	seedGlobalPolicy(db)
	seedAdminUser(db)

	log.Println("✅ Seeding completed!")
}

func seedPlans(db *gorm.DB) {
	log.Println("Seeding Plan Catalog...")

	plans := []model.Plan{
		{
			Slug:         "basic",
			Name:         "Basic",
			Theme:        "default",
			Price:        0,
			BillingCycle: "monthly",
			MonthlyLimit: 1,
			FeatureOverrides: datatypes.JSON([]byte(`{
				"prime_jobs": false,
				"show_power_verbs": false,
				"resume_ai_review": false,
				"priority_booking": false,
				"community_access": false,
				"mentor_chat": false,
				"resume_pass_limit": 1
			}`)),
			Discounts: datatypes.JSON([]byte(`{"base": 0}`)),
			IsActive:  true,
			SortOrder: 1,
		},
		{
			Slug:         "pro",
			Name:         "Pro",
			Theme:        "blue",
			Price:        47,
			BillingCycle: "monthly",
			MonthlyLimit: 10,
			FeatureOverrides: datatypes.JSON([]byte(`{
				"prime_jobs": true,
				"show_power_verbs": true,
				"resume_ai_review": true,
				"priority_booking": false,
				"community_access": true,
				"mentor_chat": false,
				"resume_pass_limit": 10
			}`)),
			Discounts: datatypes.JSON([]byte(`{"base": 5, "mentoring": 10}`)),
			IsActive:  true,
			SortOrder: 2,
		},
		{
			Slug:         "vip",
			Name:         "VIP",
			Theme:        "gold",
			Price:        97,
			BillingCycle: "monthly",
			MonthlyLimit: 30,
			FeatureOverrides: datatypes.JSON([]byte(`{
				"prime_jobs": true,
				"show_power_verbs": true,
				"resume_ai_review": true,
				"priority_booking": true,
				"community_access": true,
				"mentor_chat": true,
				"resume_pass_limit": 30
			}`)),
			Discounts: datatypes.JSON([]byte(`{"base": 10, "mentoring": 20, "consulting": 15}`)),
			IsActive:  true,
			SortOrder: 3,
		},
	}

	for _, p := range plans {
		var existing model.Plan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			log.Printf("Plan '%s' already exists, skipping...", p.Slug)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating plan '%s': %v", p.Slug, err)
		} else {
			log.Printf("Created plan: %s (%s)", p.Name, p.Slug)
		}
	}
}

func seedGlobalPolicy(db *gorm.DB) {
	log.Println("Seeding Global Booking Policy...")

	var existing model.BookingPolicy
	if err := db.Where("service_id IS NULL").First(&existing).Error; err == nil {
		log.Println("Global booking policy already exists, skipping...")
		return
	}

	policy := model.BookingPolicy{
		ServiceId:                nil,
		CancellationWindowHours:  24,
		MaxReschedulesPerBooking: 0,
		MaxConcurrentBookings:    3,
		MaxAdvanceDays:           0,
	}

	if err := db.Create(&policy).Error; err != nil {
		log.Printf("Error creating global booking policy: %v", err)
	} else {
		log.Println("Created global booking policy (24h window, 0 reschedules, 3 concurrent)")
	}
}

func seedAdminUser(db *gorm.DB) {
	log.Println("Seeding Admin User...")

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@euanapratica.com"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-now"
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin user '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}
	hashStr := string(hash)

	admin := model.User{
		Email:         email,
		PasswordHash:  &hashStr,
		FullName:      "Administrador",
		Role:          "admin",
		Status:        "active",
		EmailVerified: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
	} else {
		log.Printf("Created admin user: %s", email)
	}
}
