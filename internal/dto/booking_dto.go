// FILE: internal/dto/booking_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Mentor Services ---

type MentorServiceResponse struct {
	Id              uuid.UUID `json:"id"`
	MentorId        uuid.UUID `json:"mentor_id"`
	ServiceType     string    `json:"service_type"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	DiscountPercent float64   `json:"discount_percent"`
	FinalPrice      float64   `json:"final_price"`
}

type UpsertMentorServiceRequest struct {
	ServiceType     string  `json:"service_type" validate:"required"`
	Title           string  `json:"title" validate:"required,min=3"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"gte=0"`
	IsActive        *bool   `json:"is_active"`
}

// --- Bookings ---

type CreateBookingRequest struct {
	ServiceId      uuid.UUID `json:"service_id" validate:"required"`
	ScheduledStart time.Time `json:"scheduled_start" validate:"required"`
	StudentNotes   *string   `json:"student_notes"`
}

type RescheduleBookingRequest struct {
	ScheduledStart time.Time `json:"scheduled_start" validate:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type BookingResponse struct {
	Id              uuid.UUID `json:"id"`
	ServiceId       uuid.UUID `json:"service_id"`
	MentorId        uuid.UUID `json:"mentor_id"`
	StudentId       uuid.UUID `json:"student_id"`
	ScheduledStart  time.Time `json:"scheduled_start"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	RescheduleCount int       `json:"reschedule_count"`
	MeetLink        *string   `json:"meet_link,omitempty"`
	StudentNotes    *string   `json:"student_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookingLimitsResponse mirrors the policy engine output so the
// frontend can disable actions before the user attempts them.
type BookingLimitsResponse struct {
	CanReschedule        bool `json:"can_reschedule"`
	CanCancel            bool `json:"can_cancel"`
	RemainingReschedules int  `json:"remaining_reschedules"`
	IsLateCancel         bool `json:"is_late_cancel"`
	HoursUntil           int  `json:"hours_until"`
}

type BookingDetailResponse struct {
	Booking BookingResponse       `json:"booking"`
	Limits  BookingLimitsResponse `json:"limits"`
}

// --- Booking policy admin CRUD ---

type UpsertBookingPolicyRequest struct {
	ServiceId                *uuid.UUID `json:"service_id"` // nil targets the global policy
	CancellationWindowHours  int        `json:"cancellation_window_hours" validate:"gte=0"`
	MaxReschedulesPerBooking int        `json:"max_reschedules_per_booking" validate:"gte=0"`
	MaxConcurrentBookings    int        `json:"max_concurrent_bookings" validate:"gt=0"`
	MaxAdvanceDays           int        `json:"max_advance_days" validate:"gte=0"`
}

type BookingPolicyResponse struct {
	Id                       uuid.UUID  `json:"id"`
	ServiceId                *uuid.UUID `json:"service_id,omitempty"`
	CancellationWindowHours  int        `json:"cancellation_window_hours"`
	MaxReschedulesPerBooking int        `json:"max_reschedules_per_booking"`
	MaxConcurrentBookings    int        `json:"max_concurrent_bookings"`
	MaxAdvanceDays           int        `json:"max_advance_days"`
}
