// Package reconcile implements the periodic subscription sweep: three
// independent rules that move rows between lifecycle states based on
// elapsed time versus stored deadlines. Each rule is a pure transition
// over a single row so idempotence can be verified in isolation.
package reconcile

import (
	"time"

	"eua-na-pratica-be/internal/entity"

	"github.com/google/uuid"
)

// OverdueTolerance is how long past next_billing_date an active
// subscription may sit before being marked past_due. Covers short
// payment-processing and webhook delays.
const OverdueTolerance = 72 * time.Hour

// ApplyOverdue moves an active subscription whose next_billing_date is
// more than the tolerance in the past to past_due, starts dunning and
// opens the grace window. Returns false when the row does not match
// the rule.
func ApplyOverdue(sub *entity.UserSubscription, graceWindow time.Duration, now time.Time) bool {
	if sub.Status != entity.SubscriptionStatusActive {
		return false
	}
	if sub.NextBillingDate == nil || now.Sub(*sub.NextBillingDate) <= OverdueTolerance {
		return false
	}
	graceEnd := now.Add(graceWindow)
	sub.Status = entity.SubscriptionStatusPastDue
	sub.DunningAttempts = 1
	sub.GracePeriodEndsAt = &graceEnd
	sub.UpdatedAt = now
	return true
}

// ApplyGraceExpiry force-downgrades a grace_period subscription whose
// grace window has lapsed: plan reset to basic, status cancelled, all
// billing fields cleared.
func ApplyGraceExpiry(sub *entity.UserSubscription, basicPlanId uuid.UUID, now time.Time) bool {
	if sub.Status != entity.SubscriptionStatusGracePeriod {
		return false
	}
	if sub.GracePeriodEndsAt == nil || sub.GracePeriodEndsAt.After(now) {
		return false
	}
	Downgrade(sub, basicPlanId, now)
	return true
}

// ApplyScheduledCancellation downgrades a subscription flagged
// cancel_at_period_end once its expires_at has passed, while it is
// still active or past_due.
func ApplyScheduledCancellation(sub *entity.UserSubscription, basicPlanId uuid.UUID, now time.Time) bool {
	if !sub.CancelAtPeriodEnd {
		return false
	}
	if sub.Status != entity.SubscriptionStatusActive && sub.Status != entity.SubscriptionStatusPastDue {
		return false
	}
	if sub.ExpiresAt == nil || sub.ExpiresAt.After(now) {
		return false
	}
	Downgrade(sub, basicPlanId, now)
	return true
}

// Downgrade resets a subscription to the free tier: plan set to basic,
// status cancelled, every billing field cleared. Shared with the
// immediate-cancellation path for subscriptions that never reached a
// paid period, which the sweep rules do not watch.
func Downgrade(sub *entity.UserSubscription, basicPlanId uuid.UUID, now time.Time) {
	sub.PlanId = basicPlanId
	sub.Status = entity.SubscriptionStatusCancelled
	sub.NextBillingDate = nil
	sub.GracePeriodEndsAt = nil
	sub.ExpiresAt = nil
	sub.CancelAtPeriodEnd = false
	sub.DunningAttempts = 0
	sub.GatewayOrderId = nil
	sub.UpdatedAt = now
}
