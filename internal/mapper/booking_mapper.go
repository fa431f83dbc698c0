package mapper

import (
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/model"
)

type BookingMapper struct{}

func NewBookingMapper() *BookingMapper {
	return &BookingMapper{}
}

func (m *BookingMapper) ServiceToEntity(s *model.MentorService) *entity.MentorService {
	if s == nil {
		return nil
	}
	return &entity.MentorService{
		Id:              s.Id,
		MentorId:        s.MentorId,
		ServiceType:     s.ServiceType,
		Title:           s.Title,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *BookingMapper) ServiceToModel(s *entity.MentorService) *model.MentorService {
	if s == nil {
		return nil
	}
	return &model.MentorService{
		Id:              s.Id,
		MentorId:        s.MentorId,
		ServiceType:     s.ServiceType,
		Title:           s.Title,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *BookingMapper) BookingToEntity(b *model.Booking) *entity.Booking {
	if b == nil {
		return nil
	}
	return &entity.Booking{
		Id:              b.Id,
		ServiceId:       b.ServiceId,
		MentorId:        b.MentorId,
		StudentId:       b.StudentId,
		ScheduledStart:  b.ScheduledStart,
		DurationMinutes: b.DurationMinutes,
		Status:          entity.BookingStatus(b.Status),
		RescheduleCount: b.RescheduleCount,
		MeetLink:        b.MeetLink,
		StudentNotes:    b.StudentNotes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (m *BookingMapper) BookingToModel(b *entity.Booking) *model.Booking {
	if b == nil {
		return nil
	}
	return &model.Booking{
		Id:              b.Id,
		ServiceId:       b.ServiceId,
		MentorId:        b.MentorId,
		StudentId:       b.StudentId,
		ScheduledStart:  b.ScheduledStart,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		RescheduleCount: b.RescheduleCount,
		MeetLink:        b.MeetLink,
		StudentNotes:    b.StudentNotes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (m *BookingMapper) PolicyToEntity(p *model.BookingPolicy) *entity.BookingPolicy {
	if p == nil {
		return nil
	}
	return &entity.BookingPolicy{
		Id:                       p.Id,
		ServiceId:                p.ServiceId,
		CancellationWindowHours:  p.CancellationWindowHours,
		MaxReschedulesPerBooking: p.MaxReschedulesPerBooking,
		MaxConcurrentBookings:    p.MaxConcurrentBookings,
		MaxAdvanceDays:           p.MaxAdvanceDays,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
}

func (m *BookingMapper) PolicyToModel(p *entity.BookingPolicy) *model.BookingPolicy {
	if p == nil {
		return nil
	}
	return &model.BookingPolicy{
		Id:                       p.Id,
		ServiceId:                p.ServiceId,
		CancellationWindowHours:  p.CancellationWindowHours,
		MaxReschedulesPerBooking: p.MaxReschedulesPerBooking,
		MaxConcurrentBookings:    p.MaxConcurrentBookings,
		MaxAdvanceDays:           p.MaxAdvanceDays,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
}
