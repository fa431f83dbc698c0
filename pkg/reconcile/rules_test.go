package reconcile

import (
	"testing"
	"time"

	"eua-na-pratica-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sweepNow  = time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC)
	basicPlan = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	paidPlan  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	graceWeek = 7 * 24 * time.Hour
)

func activeSub(nextBilling time.Time) *entity.UserSubscription {
	return &entity.UserSubscription{
		Id:              uuid.New(),
		PlanId:          paidPlan,
		Status:          entity.SubscriptionStatusActive,
		NextBillingDate: &nextBilling,
	}
}

func TestApplyOverdue(t *testing.T) {
	t.Run("active past tolerance moves to past_due", func(t *testing.T) {
		sub := activeSub(sweepNow.Add(-4 * 24 * time.Hour))

		require.True(t, ApplyOverdue(sub, graceWeek, sweepNow))

		assert.Equal(t, entity.SubscriptionStatusPastDue, sub.Status)
		assert.Equal(t, 1, sub.DunningAttempts)
		require.NotNil(t, sub.GracePeriodEndsAt)
		assert.Equal(t, sweepNow.Add(graceWeek), *sub.GracePeriodEndsAt)
	})

	t.Run("inside tolerance is untouched", func(t *testing.T) {
		sub := activeSub(sweepNow.Add(-2 * 24 * time.Hour))
		assert.False(t, ApplyOverdue(sub, graceWeek, sweepNow))
		assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	})

	t.Run("missing next_billing_date is untouched", func(t *testing.T) {
		sub := activeSub(sweepNow)
		sub.NextBillingDate = nil
		assert.False(t, ApplyOverdue(sub, graceWeek, sweepNow))
	})

	t.Run("non-active statuses are untouched", func(t *testing.T) {
		for _, status := range []entity.SubscriptionStatus{
			entity.SubscriptionStatusTrial,
			entity.SubscriptionStatusPastDue,
			entity.SubscriptionStatusGracePeriod,
			entity.SubscriptionStatusCancelled,
		} {
			sub := activeSub(sweepNow.Add(-30 * 24 * time.Hour))
			sub.Status = status
			assert.False(t, ApplyOverdue(sub, graceWeek, sweepNow), "status %s", status)
		}
	})
}

func TestApplyGraceExpiry(t *testing.T) {
	expired := sweepNow.Add(-time.Hour)

	t.Run("expired grace window downgrades to basic", func(t *testing.T) {
		nextBilling := sweepNow.Add(-10 * 24 * time.Hour)
		orderId := "order-123"
		sub := &entity.UserSubscription{
			Id:                uuid.New(),
			PlanId:            paidPlan,
			Status:            entity.SubscriptionStatusGracePeriod,
			NextBillingDate:   &nextBilling,
			GracePeriodEndsAt: &expired,
			DunningAttempts:   3,
			GatewayOrderId:    &orderId,
		}

		require.True(t, ApplyGraceExpiry(sub, basicPlan, sweepNow))

		assert.Equal(t, entity.SubscriptionStatusCancelled, sub.Status)
		assert.Equal(t, basicPlan, sub.PlanId)
		assert.Nil(t, sub.NextBillingDate)
		assert.Nil(t, sub.GracePeriodEndsAt)
		assert.Nil(t, sub.ExpiresAt)
		assert.Nil(t, sub.GatewayOrderId)
		assert.Zero(t, sub.DunningAttempts)
		assert.False(t, sub.CancelAtPeriodEnd)
	})

	t.Run("second sweep is a no-op", func(t *testing.T) {
		sub := &entity.UserSubscription{
			Id:                uuid.New(),
			PlanId:            paidPlan,
			Status:            entity.SubscriptionStatusGracePeriod,
			GracePeriodEndsAt: &expired,
		}

		require.True(t, ApplyGraceExpiry(sub, basicPlan, sweepNow))
		after := *sub

		assert.False(t, ApplyGraceExpiry(sub, basicPlan, sweepNow.Add(time.Hour)))
		assert.Equal(t, after, *sub)
	})

	t.Run("future grace window is untouched", func(t *testing.T) {
		future := sweepNow.Add(48 * time.Hour)
		sub := &entity.UserSubscription{
			Status:            entity.SubscriptionStatusGracePeriod,
			PlanId:            paidPlan,
			GracePeriodEndsAt: &future,
		}
		assert.False(t, ApplyGraceExpiry(sub, basicPlan, sweepNow))
		assert.Equal(t, paidPlan, sub.PlanId)
	})
}

func TestApplyScheduledCancellation(t *testing.T) {
	past := sweepNow.Add(-time.Hour)
	future := sweepNow.Add(time.Hour)

	tests := []struct {
		name      string
		status    entity.SubscriptionStatus
		flagged   bool
		expiresAt *time.Time
		want      bool
	}{
		{"active flagged and expired", entity.SubscriptionStatusActive, true, &past, true},
		{"past_due flagged and expired", entity.SubscriptionStatusPastDue, true, &past, true},
		{"flagged but not yet expired", entity.SubscriptionStatusActive, true, &future, false},
		{"expired but not flagged", entity.SubscriptionStatusActive, false, &past, false},
		{"flagged with no expiry date", entity.SubscriptionStatusActive, true, nil, false},
		{"grace_period rows are left to the grace rule", entity.SubscriptionStatusGracePeriod, true, &past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &entity.UserSubscription{
				Id:                uuid.New(),
				PlanId:            paidPlan,
				Status:            tt.status,
				CancelAtPeriodEnd: tt.flagged,
				ExpiresAt:         tt.expiresAt,
			}

			got := ApplyScheduledCancellation(sub, basicPlan, sweepNow)
			require.Equal(t, tt.want, got)

			if tt.want {
				assert.Equal(t, entity.SubscriptionStatusCancelled, sub.Status)
				assert.Equal(t, basicPlan, sub.PlanId)
				assert.False(t, sub.CancelAtPeriodEnd)
				// The downgraded row no longer matches the rule.
				assert.False(t, ApplyScheduledCancellation(sub, basicPlan, sweepNow))
			} else {
				assert.Equal(t, tt.status, sub.Status)
				assert.Equal(t, paidPlan, sub.PlanId)
			}
		})
	}
}
