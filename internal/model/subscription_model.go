package model

import (
	"time"

	"github.com/google/uuid"
)

type UserSubscription struct {
	Id                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId            uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanId            uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status            string     `gorm:"type:varchar(50);not null;index"`
	PaymentStatus     string     `gorm:"type:varchar(50);not null"`
	BillingCycle      string     `gorm:"type:varchar(20);not null;default:'monthly'"`
	NextBillingDate   *time.Time `gorm:"index"`
	GracePeriodEndsAt *time.Time
	ExpiresAt         *time.Time
	CancelAtPeriodEnd bool    `gorm:"default:false"`
	DunningAttempts   int     `gorm:"default:0"`
	GatewayOrderId    *string `gorm:"type:varchar(255)"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

type Cancellation struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubscriptionId uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason         string    `gorm:"type:text"`
	Feedback       string    `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(50);not null"`
	EffectiveDate  time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Cancellation) TableName() string {
	return "cancellations"
}
