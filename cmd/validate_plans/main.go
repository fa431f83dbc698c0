package main

import (
	"encoding/json"
	"log"
	"os"

	"eua-na-pratica-be/internal/model"
	"eua-na-pratica-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

type planExpectation struct {
	Slug      string
	Name      string
	Price     float64
	PrimeJobs bool
}

var expectations = []planExpectation{
	{Slug: "basic", Name: "Basic", Price: 0, PrimeJobs: false},
	{Slug: "pro", Name: "Pro", Price: 47, PrimeJobs: true},
	{Slug: "vip", Name: "VIP", Price: 97, PrimeJobs: true},
}

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

	color.Cyan("🔎 Validating Plan Catalog\n")

	failures := 0
	check := func(label string, ok bool) {
		if ok {
			color.Green("  [PASS] %s", label)
		} else {
			color.Red("  [FAIL] %s", label)
			failures++
		}
	}

	var activePlans []model.Plan
	if err := db.Where("is_active = ?", true).Order("sort_order asc").Find(&activePlans).Error; err != nil {
		color.Red("Failed to load plan catalog: %v", err)
		os.Exit(1)
	}

	color.Yellow("\n1. Catalog shape")
	check("exactly 3 active plans", len(activePlans) == 3)

	bySlug := map[string]model.Plan{}
	for _, p := range activePlans {
		bySlug[p.Slug] = p
	}

	for _, exp := range expectations {
		color.Yellow("\n2. Plan '%s'", exp.Slug)

		p, found := bySlug[exp.Slug]
		check("plan exists and is active", found)
		if !found {
			continue
		}

		check("name is "+exp.Name, p.Name == exp.Name)
		check("price matches", p.Price == exp.Price)

		var overrides map[string]interface{}
		if err := json.Unmarshal(p.FeatureOverrides, &overrides); err != nil {
			check("feature overrides parse as JSON", false)
			continue
		}
		primeJobs, _ := overrides["prime_jobs"].(bool)
		check("prime_jobs flag matches", primeJobs == exp.PrimeJobs)
	}

	if failures > 0 {
		color.Red("\n❌ Plan catalog validation failed (%d check(s))", failures)
		os.Exit(1)
	}

	color.Green("\n✅ Plan catalog is valid")
	os.Exit(0)
}
