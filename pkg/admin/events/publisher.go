package events

import (
	"context"
	"time"

	"eua-na-pratica-be/internal/pkg/logger"
	pkgEvents "eua-na-pratica-be/pkg/events"
	pkgNats "eua-na-pratica-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for admin operations.
type Publisher interface {
	PublishUserRegistered(ctx context.Context, userId uuid.UUID, email, fullName, source string)
	PublishLeadProvisioned(ctx context.Context, userId, subscriptionId uuid.UUID, email, planSlug string)
	PublishSubscriptionEvent(ctx context.Context, eventType string, subscriptionId, userId uuid.UUID, status string)
	PublishBookingEvent(ctx context.Context, eventType string, bookingId, studentId, mentorId uuid.UUID, status string)
}

// NatsPublisher implements Publisher over the JetStream bus.
type NatsPublisher struct {
	publisher *pkgNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pkgNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}
	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *NatsPublisher) PublishUserRegistered(ctx context.Context, userId uuid.UUID, email, fullName, source string) {
	p.emit(ctx, "USER_REGISTERED", map[string]interface{}{
		"user_id":   userId,
		"email":     email,
		"full_name": fullName,
		"source":    source,
	})
}

func (p *NatsPublisher) PublishLeadProvisioned(ctx context.Context, userId, subscriptionId uuid.UUID, email, planSlug string) {
	p.emit(ctx, "LEAD_PROVISIONED", map[string]interface{}{
		"user_id":         userId,
		"subscription_id": subscriptionId,
		"email":           email,
		"plan_slug":       planSlug,
	})
}

func (p *NatsPublisher) PublishSubscriptionEvent(ctx context.Context, eventType string, subscriptionId, userId uuid.UUID, status string) {
	p.emit(ctx, eventType, map[string]interface{}{
		"subscription_id": subscriptionId,
		"user_id":         userId,
		"status":          status,
	})
}

func (p *NatsPublisher) PublishBookingEvent(ctx context.Context, eventType string, bookingId, studentId, mentorId uuid.UUID, status string) {
	p.emit(ctx, eventType, map[string]interface{}{
		"booking_id": bookingId,
		"student_id": studentId,
		"mentor_id":  mentorId,
		"status":     status,
	})
}
