package main

import (
	"log"
	"os"

	"eua-na-pratica-be/internal/model"
	"eua-na-pratica-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.EmailVerificationToken{},
		&model.UserRefreshToken{},
		&model.Plan{},
		&model.UsageCounter{},
		&model.UserSubscription{},
		&model.Cancellation{},
		&model.Invitation{},
		&model.MentorService{},
		&model.Booking{},
		&model.BookingPolicy{},
		&model.ResumeReport{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Views & Functions
	log.Println("Step 3: Creating Views and Functions...")

	postMigrationSQL := []string{
		// At most one non-cancelled subscription row per user.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_user_subscriptions_live
		 ON user_subscriptions (user_id) WHERE status <> 'cancelled';`,

		// Function: set_current_timestamp_updated_at
		`CREATE OR REPLACE FUNCTION set_current_timestamp_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
		DECLARE _new_value TIMESTAMP WITH TIME ZONE;
		BEGIN
		  _new_value := now();
		  IF NEW.updated_at IS DISTINCT FROM _new_value THEN NEW.updated_at = _new_value; END IF;
		  RETURN NEW;
		END; $$;`,

		// View: user_subscription_history
		`CREATE OR REPLACE VIEW user_subscription_history AS
		 SELECT us.user_id, u.full_name, p.name AS plan_name, p.price, us.status, us.payment_status, us.next_billing_date, us.created_at
		 FROM user_subscriptions us
		 JOIN users u ON us.user_id = u.id
		 JOIN plans p ON us.plan_id = p.id
		 ORDER BY us.created_at DESC;`,

		// View: mentor_agenda
		`CREATE OR REPLACE VIEW mentor_agenda AS
		 SELECT b.id AS booking_id, b.mentor_id, b.student_id, u.full_name AS student_name, ms.title AS service_title, b.scheduled_start, b.status
		 FROM bookings b
		 JOIN users u ON b.student_id = u.id
		 JOIN mentor_services ms ON b.service_id = ms.id
		 ORDER BY b.scheduled_start ASC;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
