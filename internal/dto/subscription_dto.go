// FILE: internal/dto/subscription_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Checkout / gateway ---

type CheckoutRequest struct {
	PlanId    uuid.UUID `json:"plan_id" validate:"required"`
	FirstName string    `json:"first_name" validate:"required"`
	LastName  string    `json:"last_name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"omitempty"`
}

type CheckoutResponse struct {
	SubscriptionId  uuid.UUID `json:"subscription_id"`
	SnapRedirectUrl string    `json:"snap_redirect_url"`
	SnapToken       string    `json:"snap_token"`
}

type GatewayWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	// Signature validation fields
	SignatureKey string `json:"signature_key"`
	StatusCode   string `json:"status_code"`
	GrossAmount  string `json:"gross_amount"`
}

// --- Subscription state ---

type SubscriptionStatusResponse struct {
	Id                uuid.UUID  `json:"id"`
	PlanSlug          string     `json:"plan_slug"`
	PlanName          string     `json:"plan_name"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"payment_status"`
	BillingCycle      string     `json:"billing_cycle"`
	NextBillingDate   *time.Time `json:"next_billing_date,omitempty"`
	GracePeriodEndsAt *time.Time `json:"grace_period_ends_at,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
}

// --- Cancellation ---

type CancelSubscriptionRequest struct {
	Reason   string `json:"reason" validate:"required,min=3"`
	Feedback string `json:"feedback"`
}

type CancelSubscriptionResponse struct {
	Success   bool       `json:"success"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Message   string     `json:"message"`
}

// DunningNoticeMessage is the payload exchanged on the dunning topic.
type DunningNoticeMessage struct {
	SubscriptionId uuid.UUID `json:"subscription_id"`
	UserId         uuid.UUID `json:"user_id"`
	GraceEndsAt    time.Time `json:"grace_ends_at"`
}

// --- Reconciliation sweep ---

type ReconcileSummary struct {
	Success            bool     `json:"success"`
	Processed          int      `json:"processed"`
	OverdueToPastDue   int      `json:"overdue_to_past_due"`
	GracePeriodExpired int      `json:"grace_period_expired"`
	CancelledExpired   int      `json:"cancelled_expired"`
	Errors             []string `json:"errors"`
}
