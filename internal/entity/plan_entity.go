// FILE: internal/entity/plan_entity.go
// Domain entities for the plan catalog and resolved entitlements
package entity

import (
	"time"

	"github.com/google/uuid"
)

type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"

	PlanSlugBasic = "basic"
	PlanSlugPro   = "pro"
	PlanSlugVip   = "vip"
)

// Plan is a static catalog entry (basic/pro/vip). Exactly one active
// plan exists per slug; the seeder enforces this.
type Plan struct {
	Id           uuid.UUID
	Slug         string
	Name         string
	Theme        string
	Price        float64
	BillingCycle BillingCycle
	MonthlyLimit int // metered feature quota per calendar month
	// Raw feature overrides as stored; merged under the static default
	// key set by pkg/entitlement. Unknown keys are ignored.
	FeatureOverrides map[string]interface{}
	// Discount table: service category -> percent. "base" is the
	// fallback for unmapped categories.
	Discounts map[string]float64
	IsActive  bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UsageCounter tracks metered feature consumption for one user within
// one calendar month (period formatted "2006-01").
type UsageCounter struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Meter     string
	Period    string
	Used      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Metered feature keys.
const (
	MeterResumeAnalyses  = "resume_analyses"
	MeterJobApplications = "job_applications"
	MeterTranslations    = "translations"
)
