package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Plan struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug         string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Theme        string    `gorm:"type:varchar(50)"`
	Price        float64   `gorm:"type:decimal(10,2);not null"`
	BillingCycle string    `gorm:"type:varchar(20);not null;default:'monthly'"`
	MonthlyLimit int       `gorm:"default:1"`
	// JSONB maps; pkg/entitlement interprets them against the closed
	// default key set.
	FeatureOverrides datatypes.JSON `gorm:"type:jsonb"`
	Discounts        datatypes.JSON `gorm:"type:jsonb"`
	IsActive         bool           `gorm:"default:true"`
	SortOrder        int            `gorm:"default:0"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
}

func (Plan) TableName() string {
	return "plans"
}

type UsageCounter struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usage_user_meter_period"`
	Meter     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_usage_user_meter_period"`
	Period    string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_usage_user_meter_period"`
	Used      int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UsageCounter) TableName() string {
	return "usage_counters"
}
