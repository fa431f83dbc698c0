// FILE: internal/entity/booking_entity.go
// Domain entities for mentor sessions and booking policies
package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// MentorService is a bookable session type offered by a mentor
// (e.g. resume review, mock interview, career planning).
type MentorService struct {
	Id              uuid.UUID
	MentorId        uuid.UUID
	ServiceType     string
	Title           string
	Description     string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Booking is a scheduled mentor/student session.
type Booking struct {
	Id              uuid.UUID
	ServiceId       uuid.UUID
	MentorId        uuid.UUID
	StudentId       uuid.UUID
	ScheduledStart  time.Time
	DurationMinutes int
	Status          BookingStatus
	RescheduleCount int
	MeetLink        *string
	StudentNotes    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BookingPolicy holds the cancellation/reschedule rules. A row with a
// nil ServiceId is the global policy; a service-scoped row takes
// precedence when both exist.
type BookingPolicy struct {
	Id                       uuid.UUID
	ServiceId                *uuid.UUID
	CancellationWindowHours  int
	MaxReschedulesPerBooking int
	MaxConcurrentBookings    int
	MaxAdvanceDays           int
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
