package main

import (
	"context"
	"log"
	"time"

	"eua-na-pratica-be/internal/bootstrap"
	"eua-na-pratica-be/internal/config"
	"eua-na-pratica-be/internal/server"
	"eua-na-pratica-be/internal/tracer"
	"eua-na-pratica-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Dunning Consumer...")
		if err := container.DunningService.Consume(context.Background()); err != nil {
			log.Printf("Background Dunning Consumer Error: %v", err)
		}
	}()

	// Nightly billing reconciliation. The admin endpoint triggers the
	// same sweep on demand.
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := container.Sweeper.Run(context.Background()); err != nil {
				log.Printf("Background Reconciliation Error: %v", err)
			}
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
