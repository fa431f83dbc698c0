package policy

import (
	"testing"
	"time"

	"eua-na-pratica-be/internal/entity"
)

var baseTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func policyWith(window, reschedules, concurrent int) *entity.BookingPolicy {
	return &entity.BookingPolicy{
		CancellationWindowHours:  window,
		MaxReschedulesPerBooking: reschedules,
		MaxConcurrentBookings:    concurrent,
	}
}

func confirmedBooking(start time.Time, rescheduleCount int) *entity.Booking {
	return &entity.Booking{
		Status:          entity.BookingStatusConfirmed,
		ScheduledStart:  start,
		RescheduleCount: rescheduleCount,
	}
}

func TestHoursUntil(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		want  int
	}{
		{"exactly 24h", baseTime.Add(24 * time.Hour), 24},
		{"23h59m truncates down", baseTime.Add(24*time.Hour - time.Minute), 23},
		{"24h30m truncates down", baseTime.Add(24*time.Hour + 30*time.Minute), 24},
		{"in the past", baseTime.Add(-2 * time.Hour), -2},
		{"under an hour", baseTime.Add(45 * time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HoursUntil(baseTime, tt.start); got != tt.want {
				t.Errorf("HoursUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeRescheduleWindow(t *testing.T) {
	p := policyWith(24, 2, 3)

	tests := []struct {
		name              string
		booking           *entity.Booking
		wantCanReschedule bool
		wantRemaining     int
	}{
		{
			// The boundary itself is inside the allowed window.
			name:              "exactly at the window boundary",
			booking:           confirmedBooking(baseTime.Add(24*time.Hour), 0),
			wantCanReschedule: true,
			wantRemaining:     2,
		},
		{
			name:              "one minute inside the window",
			booking:           confirmedBooking(baseTime.Add(24*time.Hour-time.Minute), 0),
			wantCanReschedule: false,
			wantRemaining:     2,
		},
		{
			name:              "reschedule budget exhausted",
			booking:           confirmedBooking(baseTime.Add(48*time.Hour), 2),
			wantCanReschedule: false,
			wantRemaining:     0,
		},
		{
			name: "cancelled booking never reschedules",
			booking: &entity.Booking{
				Status:         entity.BookingStatusCancelled,
				ScheduledStart: baseTime.Add(48 * time.Hour),
			},
			wantCanReschedule: false,
			wantRemaining:     2,
		},
		{
			name:              "count above budget floors remaining at zero",
			booking:           confirmedBooking(baseTime.Add(48*time.Hour), 5),
			wantCanReschedule: false,
			wantRemaining:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.booking, p, baseTime)
			if got.CanReschedule != tt.wantCanReschedule {
				t.Errorf("CanReschedule = %v, want %v", got.CanReschedule, tt.wantCanReschedule)
			}
			if got.RemainingReschedules != tt.wantRemaining {
				t.Errorf("RemainingReschedules = %d, want %d", got.RemainingReschedules, tt.wantRemaining)
			}
			if got.CanReschedule && tt.booking.Status != entity.BookingStatusConfirmed {
				t.Error("CanReschedule must imply a confirmed booking")
			}
		})
	}
}

func TestComputeLateCancel(t *testing.T) {
	p := policyWith(24, 0, 3)

	inside := Compute(confirmedBooking(baseTime.Add(3*time.Hour), 0), p, baseTime)
	if !inside.CanCancel {
		t.Error("cancel inside the window must still be permitted")
	}
	if !inside.IsLateCancel {
		t.Error("cancel inside the window must be flagged late")
	}

	outside := Compute(confirmedBooking(baseTime.Add(72*time.Hour), 0), p, baseTime)
	if !outside.CanCancel || outside.IsLateCancel {
		t.Errorf("cancel outside the window: CanCancel=%v IsLateCancel=%v", outside.CanCancel, outside.IsLateCancel)
	}
}

func TestCancelStatusReclassification(t *testing.T) {
	p := policyWith(24, 0, 3)

	late := confirmedBooking(baseTime.Add(2*time.Hour), 0)
	if got := CancelStatus(late, p, baseTime); got != entity.BookingStatusNoShow {
		t.Errorf("late cancel status = %s, want %s", got, entity.BookingStatusNoShow)
	}

	early := confirmedBooking(baseTime.Add(48*time.Hour), 0)
	if got := CancelStatus(early, p, baseTime); got != entity.BookingStatusCancelled {
		t.Errorf("early cancel status = %s, want %s", got, entity.BookingStatusCancelled)
	}

	boundary := confirmedBooking(baseTime.Add(24*time.Hour), 0)
	if got := CancelStatus(boundary, p, baseTime); got != entity.BookingStatusCancelled {
		t.Errorf("boundary cancel status = %s, want %s", got, entity.BookingStatusCancelled)
	}
}

func TestCanBook(t *testing.T) {
	p := policyWith(24, 0, 3)
	start := baseTime.Add(48 * time.Hour)

	if !CanBook(p, 2, start, baseTime) {
		t.Error("two upcoming bookings under a limit of three must allow another")
	}
	if CanBook(p, 3, start, baseTime) {
		t.Error("limit reached must block a new booking")
	}

	horizon := policyWith(24, 0, 3)
	horizon.MaxAdvanceDays = 30
	if CanBook(horizon, 0, baseTime.AddDate(0, 0, 31), baseTime) {
		t.Error("booking beyond the advance horizon must be blocked")
	}
	if !CanBook(horizon, 0, baseTime.AddDate(0, 0, 29), baseTime) {
		t.Error("booking inside the advance horizon must be allowed")
	}
}

func TestEffectivePolicySelection(t *testing.T) {
	scoped := policyWith(48, 1, 2)
	global := policyWith(24, 0, 3)

	if got := Effective(scoped, global); got != scoped {
		t.Error("service-scoped policy must win over the global one")
	}
	if got := Effective(nil, global); got != global {
		t.Error("global policy must apply when no scoped row exists")
	}

	def := Effective(nil, nil)
	if def.CancellationWindowHours != DefaultCancellationWindowHours ||
		def.MaxReschedulesPerBooking != DefaultMaxReschedulesPerBooking ||
		def.MaxConcurrentBookings != DefaultMaxConcurrentBookings {
		t.Errorf("fallback policy = %+v, want defaults", def)
	}
}
