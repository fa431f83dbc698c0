package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"
	"eua-na-pratica-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.SubscriptionRepository())
	assert.NotNil(t, uow.BookingRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Found %d users", count)
	})

	t.Run("Check Plan Catalog", func(t *testing.T) {
		plans, err := uow.SubscriptionRepository().FindAllPlans(context.Background(),
			specification.ActiveOnly{},
		)
		require.NoError(t, err)
		t.Logf("Found %d active plans", len(plans))

		// A seeded database carries the three catalog rows.
		if len(plans) > 0 {
			slugs := map[string]bool{}
			for _, p := range plans {
				slugs[p.Slug] = true
			}
			assert.True(t, slugs["basic"], "seeded catalog must include the basic plan")
		}
	})
}
