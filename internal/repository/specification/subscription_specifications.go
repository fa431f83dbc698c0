// Specifications used by the reconciliation sweep row scans
package specification

import (
	"time"

	"gorm.io/gorm"
)

// StatusIs filters subscriptions by their status column
type StatusIs struct {
	Status string
}

func (s StatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// StatusIn filters by a set of statuses
type StatusIn struct {
	Statuses []string
}

func (s StatusIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// NextBillingBefore matches rows whose next_billing_date is set and
// older than the cutoff
type NextBillingBefore struct {
	Cutoff time.Time
}

func (s NextBillingBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("next_billing_date IS NOT NULL AND next_billing_date < ?", s.Cutoff)
}

// GraceEndedBefore matches rows whose grace window lapsed before the cutoff
type GraceEndedBefore struct {
	Cutoff time.Time
}

func (s GraceEndedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("grace_period_ends_at IS NOT NULL AND grace_period_ends_at < ?", s.Cutoff)
}

// ExpiredBefore matches rows whose expires_at lapsed before the cutoff
type ExpiredBefore struct {
	Cutoff time.Time
}

func (s ExpiredBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at IS NOT NULL AND expires_at < ?", s.Cutoff)
}

// CancelScheduled matches rows flagged cancel_at_period_end
type CancelScheduled struct{}

func (s CancelScheduled) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("cancel_at_period_end = ?", true)
}
