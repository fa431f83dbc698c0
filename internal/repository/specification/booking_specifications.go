package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentOwnedBy filters bookings by student
type StudentOwnedBy struct {
	StudentID uuid.UUID
}

func (s StudentOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("student_id = ?", s.StudentID)
}

// MentorOwnedBy filters bookings by mentor
type MentorOwnedBy struct {
	MentorID uuid.UUID
}

func (s MentorOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("mentor_id = ?", s.MentorID)
}

// StartsAfter matches bookings scheduled after the given instant
type StartsAfter struct {
	Instant time.Time
}

func (s StartsAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scheduled_start > ?", s.Instant)
}
