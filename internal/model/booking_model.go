package model

import (
	"time"

	"github.com/google/uuid"
)

type MentorService struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MentorId        uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceType     string    `gorm:"type:varchar(50);not null"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Description     string    `gorm:"type:text"`
	DurationMinutes int       `gorm:"default:60"`
	Price           float64   `gorm:"type:decimal(10,2);not null"`
	IsActive        bool      `gorm:"default:true"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (MentorService) TableName() string {
	return "mentor_services"
}

type Booking struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceId       uuid.UUID `gorm:"type:uuid;not null;index"`
	MentorId        uuid.UUID `gorm:"type:uuid;not null;index"`
	StudentId       uuid.UUID `gorm:"type:uuid;not null;index"`
	ScheduledStart  time.Time `gorm:"not null;index"`
	DurationMinutes int       `gorm:"default:60"`
	Status          string    `gorm:"type:varchar(50);not null;index"`
	RescheduleCount int       `gorm:"default:0"`
	MeetLink        *string   `gorm:"type:text"`
	StudentNotes    string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}

type BookingPolicy struct {
	Id                       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceId                *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CancellationWindowHours  int        `gorm:"default:24"`
	MaxReschedulesPerBooking int        `gorm:"default:0"`
	MaxConcurrentBookings    int        `gorm:"default:3"`
	MaxAdvanceDays           int        `gorm:"default:0"`
	CreatedAt                time.Time  `gorm:"autoCreateTime"`
	UpdatedAt                time.Time  `gorm:"autoUpdateTime"`
}

func (BookingPolicy) TableName() string {
	return "booking_policies"
}
