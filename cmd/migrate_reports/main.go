package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"eua-na-pratica-be/internal/model"
	"eua-na-pratica-be/pkg/database"
	"eua-na-pratica-be/pkg/report"

	"github.com/joho/godotenv"
)

// Rewrites stored resume reports onto the current payload schema.
// Reports already on a 2.x version are left untouched, so the command
// is safe to run repeatedly.
func main() {
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

	log.Println("Starting Resume Report Migration...")

	var reports []model.ResumeReport
	if err := db.Find(&reports).Error; err != nil {
		log.Fatalf("Error: Failed to load resume reports: %v", err)
	}

	now := time.Now().UTC()
	var migrated, skipped, failed int

	for _, r := range reports {
		var payload map[string]interface{}
		if err := json.Unmarshal(r.Payload, &payload); err != nil {
			log.Printf("Warn: Report %s has unreadable payload, skipping: %v", r.Id, err)
			failed++
			continue
		}

		if report.IsCurrent(payload) {
			skipped++
			continue
		}

		formatted, _ := report.Format(payload, true, now)
		raw, err := json.Marshal(formatted)
		if err != nil {
			log.Printf("Warn: Report %s failed to serialize, skipping: %v", r.Id, err)
			failed++
			continue
		}

		if err := db.Model(&model.ResumeReport{}).
			Where("id = ?", r.Id).
			Update("payload", raw).Error; err != nil {
			log.Printf("Warn: Report %s failed to update: %v", r.Id, err)
			failed++
			continue
		}
		migrated++
	}

	log.Printf("Summary: %d migrated, %d already current, %d failed (of %d total)", migrated, skipped, failed, len(reports))

	if failed > 0 {
		os.Exit(1)
	}
	log.Println("✅ Success: Report migration completed.")
}
