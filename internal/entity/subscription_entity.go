// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type PaymentStatus string

const (
	SubscriptionStatusTrial       SubscriptionStatus = "trial"
	SubscriptionStatusActive      SubscriptionStatus = "active"
	SubscriptionStatusPastDue     SubscriptionStatus = "past_due"
	SubscriptionStatusGracePeriod SubscriptionStatus = "grace_period"
	SubscriptionStatusCancelled   SubscriptionStatus = "cancelled"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// UserSubscription is the single non-cancelled subscription row a user
// may hold. Status transitions happen through the payment webhook, the
// user-initiated cancellation flow, or the reconciliation sweep.
type UserSubscription struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	PlanId             uuid.UUID
	Status             SubscriptionStatus
	PaymentStatus      PaymentStatus
	BillingCycle       BillingCycle
	NextBillingDate    *time.Time
	GracePeriodEndsAt  *time.Time
	ExpiresAt          *time.Time
	CancelAtPeriodEnd  bool
	DunningAttempts    int
	GatewayOrderId     *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CancellationStatus string

const (
	CancellationStatusScheduled CancellationStatus = "scheduled"
	CancellationStatusImmediate CancellationStatus = "immediate"
)

// Cancellation records a user-initiated cancellation request together
// with the exit survey fields the frontend collects.
type Cancellation struct {
	Id             uuid.UUID
	SubscriptionId uuid.UUID
	UserId         uuid.UUID
	Reason         string
	Feedback       string
	Status         CancellationStatus
	EffectiveDate  time.Time
	CreatedAt      time.Time
}
