// Package policy computes what a booking's effective policy allows:
// reschedules, cancellations and new-booking headroom. All functions
// are pure over the booking, the policy row and a caller-supplied
// clock so the rules stay testable without a database.
package policy

import (
	"time"

	"eua-na-pratica-be/internal/entity"
)

// Hard-coded fallbacks applied when neither a service-scoped nor a
// global policy row exists.
const (
	DefaultCancellationWindowHours  = 24
	DefaultMaxReschedulesPerBooking = 0
	DefaultMaxConcurrentBookings    = 3
)

// Limits is the computed decision set for one booking.
type Limits struct {
	CanReschedule        bool `json:"can_reschedule"`
	CanCancel            bool `json:"can_cancel"`
	RemainingReschedules int  `json:"remaining_reschedules"`
	// IsLateCancel means a cancel right now falls inside the
	// cancellation window and must be recorded as a no-show.
	IsLateCancel bool `json:"is_late_cancel"`
	HoursUntil   int  `json:"hours_until_session"`
}

// Default returns the fallback policy used when no row matches.
func Default() *entity.BookingPolicy {
	return &entity.BookingPolicy{
		CancellationWindowHours:  DefaultCancellationWindowHours,
		MaxReschedulesPerBooking: DefaultMaxReschedulesPerBooking,
		MaxConcurrentBookings:    DefaultMaxConcurrentBookings,
	}
}

// Effective picks the policy governing a service: the service-scoped
// row wins, then the global (nil service id) row, then Default.
func Effective(scoped, global *entity.BookingPolicy) *entity.BookingPolicy {
	if scoped != nil {
		return scoped
	}
	if global != nil {
		return global
	}
	return Default()
}

// HoursUntil is the whole-hour difference between now and the session
// start. Fractional hours truncate toward zero, so a session exactly
// at the window boundary (24h0m against a 24h window) still counts as
// inside the allowed window.
func HoursUntil(now, scheduledStart time.Time) int {
	return int(scheduledStart.Sub(now).Hours())
}

// Compute evaluates the policy against one booking at the given time.
func Compute(b *entity.Booking, p *entity.BookingPolicy, now time.Time) Limits {
	hours := HoursUntil(now, b.ScheduledStart)
	confirmed := b.Status == entity.BookingStatusConfirmed

	remaining := p.MaxReschedulesPerBooking - b.RescheduleCount
	if remaining < 0 {
		remaining = 0
	}

	return Limits{
		CanReschedule: confirmed &&
			b.RescheduleCount < p.MaxReschedulesPerBooking &&
			hours >= p.CancellationWindowHours,
		// Cancelling is always permitted on a confirmed booking; a
		// late cancel is reclassified, not blocked.
		CanCancel:            confirmed,
		RemainingReschedules: remaining,
		IsLateCancel:         confirmed && hours < p.CancellationWindowHours,
		HoursUntil:           hours,
	}
}

// CanBook reports whether a student with the given number of upcoming
// confirmed bookings may create another one under the policy, and
// whether the requested start respects the advance-booking horizon.
func CanBook(p *entity.BookingPolicy, upcomingConfirmed int, scheduledStart, now time.Time) bool {
	if upcomingConfirmed >= p.MaxConcurrentBookings {
		return false
	}
	if p.MaxAdvanceDays > 0 {
		horizon := now.AddDate(0, 0, p.MaxAdvanceDays)
		if scheduledStart.After(horizon) {
			return false
		}
	}
	return true
}

// CancelStatus returns the status a cancellation should record:
// no_show when the cancel lands inside the cancellation window,
// cancelled otherwise.
func CancelStatus(b *entity.Booking, p *entity.BookingPolicy, now time.Time) entity.BookingStatus {
	if HoursUntil(now, b.ScheduledStart) < p.CancellationWindowHours {
		return entity.BookingStatusNoShow
	}
	return entity.BookingStatusCancelled
}
