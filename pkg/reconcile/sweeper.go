package reconcile

import (
	"context"
	"fmt"
	"time"

	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"
	"eua-na-pratica-be/pkg/events"
)

// EventSink receives the sweep's lifecycle events. The bootstrap wires
// this to NATS plus the in-process dunning pipeline.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

// Summary reports one sweep pass. Errors holds per-row failures; a
// failing row never aborts the pass.
type Summary struct {
	Processed          int
	OverdueToPastDue   int
	GracePeriodExpired int
	CancelledExpired   int
	Errors             []string
}

type Sweeper struct {
	factory     unitofwork.RepositoryFactory
	sink        EventSink
	logger      logger.ILogger
	graceWindow time.Duration
	now         func() time.Time
}

func NewSweeper(factory unitofwork.RepositoryFactory, sink EventSink, log logger.ILogger, graceDays int) *Sweeper {
	return &Sweeper{
		factory:     factory,
		sink:        sink,
		logger:      log,
		graceWindow: time.Duration(graceDays) * 24 * time.Hour,
		now:         time.Now,
	}
}

// Run executes the three rules against the current subscription table.
// Stateless and idempotent: a second pass over the same rows matches
// nothing and returns an all-zero summary.
func (s *Sweeper) Run(ctx context.Context) (*Summary, error) {
	now := s.now()
	uow := s.factory.NewUnitOfWork(ctx)
	summary := &Summary{Errors: []string{}}

	basicPlan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.Filter("slug", entity.PlanSlugBasic))
	if err != nil {
		return nil, fmt.Errorf("load basic plan: %w", err)
	}
	if basicPlan == nil {
		return nil, fmt.Errorf("basic plan missing from catalog")
	}

	// Rule 1: overdue actives.
	overdue, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.StatusIs{Status: string(entity.SubscriptionStatusActive)},
		specification.NextBillingBefore{Cutoff: now.Add(-OverdueTolerance)},
	)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("query overdue: %v", err))
	}
	for _, sub := range overdue {
		summary.Processed++
		if !ApplyOverdue(sub, s.graceWindow, now) {
			continue
		}
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("subscription %s: %v", sub.Id, err))
			continue
		}
		summary.OverdueToPastDue++
		s.emit(ctx, events.TypeSubscriptionPastDue, sub)
	}

	// Rule 2: lapsed grace periods.
	lapsed, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.StatusIs{Status: string(entity.SubscriptionStatusGracePeriod)},
		specification.GraceEndedBefore{Cutoff: now},
	)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("query grace expiry: %v", err))
	}
	for _, sub := range lapsed {
		summary.Processed++
		if !ApplyGraceExpiry(sub, basicPlan.Id, now) {
			continue
		}
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("subscription %s: %v", sub.Id, err))
			continue
		}
		summary.GracePeriodExpired++
		s.emit(ctx, events.TypeSubscriptionExpired, sub)
	}

	// Rule 3: scheduled cancellations past their period end.
	scheduled, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.CancelScheduled{},
		specification.StatusIn{Statuses: []string{
			string(entity.SubscriptionStatusActive),
			string(entity.SubscriptionStatusPastDue),
		}},
		specification.ExpiredBefore{Cutoff: now},
	)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("query scheduled cancellations: %v", err))
	}
	for _, sub := range scheduled {
		summary.Processed++
		if !ApplyScheduledCancellation(sub, basicPlan.Id, now) {
			continue
		}
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("subscription %s: %v", sub.Id, err))
			continue
		}
		summary.CancelledExpired++
		s.emit(ctx, events.TypeSubscriptionCancel, sub)
	}

	s.logger.Info("Reconcile", "Sweep finished", map[string]interface{}{
		"processed":            summary.Processed,
		"overdue_to_past_due":  summary.OverdueToPastDue,
		"grace_period_expired": summary.GracePeriodExpired,
		"cancelled_expired":    summary.CancelledExpired,
		"errors":               len(summary.Errors),
	})

	return summary, nil
}

func (s *Sweeper) emit(ctx context.Context, eventType string, sub *entity.UserSubscription) {
	if s.sink == nil {
		return
	}
	data := map[string]interface{}{
		"subscription_id": sub.Id.String(),
		"user_id":         sub.UserId.String(),
		"status":          string(sub.Status),
	}
	if sub.GracePeriodEndsAt != nil {
		data["grace_ends_at"] = sub.GracePeriodEndsAt.Format(time.RFC3339)
	}
	evt := events.New(eventType, data)
	if err := s.sink.Publish(ctx, evt); err != nil {
		s.logger.Warn("Reconcile", "Event publish failed", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
