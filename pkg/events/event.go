package events

import "time"

// Event is the contract every domain event implements before it is
// published to NATS and fanned out to websocket clients.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes for subscription and booking transitions.
const (
	TypeBookingCreated      = "BOOKING_CREATED"
	TypeBookingRescheduled  = "BOOKING_RESCHEDULED"
	TypeBookingCancelled    = "BOOKING_CANCELLED"
	TypeBookingNoShow       = "BOOKING_NO_SHOW"
	TypeSubscriptionActive  = "SUBSCRIPTION_ACTIVATED"
	TypeSubscriptionPastDue = "SUBSCRIPTION_PAST_DUE"
	TypeSubscriptionExpired = "SUBSCRIPTION_EXPIRED"
	TypeSubscriptionCancel  = "SUBSCRIPTION_CANCELLED"
)

// New builds a BaseEvent stamped now.
func New(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
