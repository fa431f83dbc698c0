// FILE: internal/service/booking_service.go
package service

import (
	"context"
	"errors"
	"time"

	"eua-na-pratica-be/internal/constant"
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"
	adminevents "eua-na-pratica-be/pkg/admin/events"
	"eua-na-pratica-be/pkg/booking/policy"
	"eua-na-pratica-be/pkg/events"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound      = errors.New(constant.MsgBookingNotFound)
	ErrConcurrentLimit      = errors.New(constant.MsgConcurrentLimit)
	ErrBookingTooFar        = errors.New(constant.MsgBookingTooFarInFuture)
	ErrRescheduleNotAllowed = errors.New(constant.MsgRescheduleNotAllowed)
)

type IBookingService interface {
	// Mentor services
	ListServices(ctx context.Context, userId *uuid.UUID) ([]*dto.MentorServiceResponse, error)
	ListMentorServices(ctx context.Context, mentorId uuid.UUID) ([]*dto.MentorServiceResponse, error)
	CreateService(ctx context.Context, mentorId uuid.UUID, req *dto.UpsertMentorServiceRequest) (*dto.MentorServiceResponse, error)
	UpdateService(ctx context.Context, mentorId, serviceId uuid.UUID, req *dto.UpsertMentorServiceRequest) (*dto.MentorServiceResponse, error)

	// Bookings
	CreateBooking(ctx context.Context, studentId uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	RescheduleBooking(ctx context.Context, studentId, bookingId uuid.UUID, req *dto.RescheduleBookingRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, studentId, bookingId uuid.UUID, req *dto.CancelBookingRequest) (*dto.BookingResponse, error)
	GetBookingDetail(ctx context.Context, userId, bookingId uuid.UUID) (*dto.BookingDetailResponse, error)
	ListStudentBookings(ctx context.Context, studentId uuid.UUID) ([]*dto.BookingResponse, error)
	ListMentorBookings(ctx context.Context, mentorId uuid.UUID) ([]*dto.BookingResponse, error)
}

type bookingService struct {
	uowFactory   unitofwork.RepositoryFactory
	entitlements IEntitlementService
	publisher    adminevents.Publisher
	logger       logger.ILogger
	now          func() time.Time
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	entitlements IEntitlementService,
	publisher adminevents.Publisher,
	log logger.ILogger,
) IBookingService {
	return &bookingService{
		uowFactory:   uowFactory,
		entitlements: entitlements,
		publisher:    publisher,
		logger:       log,
		now:          time.Now,
	}
}

// effectivePolicy resolves the policy governing a service: the
// service-scoped row wins, then the global row, then the built-in
// defaults.
func (s *bookingService) effectivePolicy(ctx context.Context, uow unitofwork.UnitOfWork, serviceId uuid.UUID) (*entity.BookingPolicy, error) {
	scoped, err := uow.BookingRepository().FindPolicyForService(ctx, serviceId)
	if err != nil {
		return nil, err
	}
	global, err := uow.BookingRepository().FindGlobalPolicy(ctx)
	if err != nil {
		return nil, err
	}
	return policy.Effective(scoped, global), nil
}

// --- Mentor services ---

func (s *bookingService) serviceToResponse(ctx context.Context, svc *entity.MentorService, userId *uuid.UUID) *dto.MentorServiceResponse {
	resp := &dto.MentorServiceResponse{
		Id:              svc.Id,
		MentorId:        svc.MentorId,
		ServiceType:     svc.ServiceType,
		Title:           svc.Title,
		Description:     svc.Description,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
		FinalPrice:      svc.Price,
	}
	if userId != nil {
		ent := s.entitlements.Resolve(ctx, *userId)
		resp.DiscountPercent = ent.DiscountForServiceType(svc.ServiceType)
		resp.FinalPrice = svc.Price * (1 - resp.DiscountPercent/100)
	}
	return resp
}

func (s *bookingService) ListServices(ctx context.Context, userId *uuid.UUID) ([]*dto.MentorServiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	services, err := uow.BookingRepository().FindAllServices(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MentorServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, s.serviceToResponse(ctx, svc, userId))
	}
	return result, nil
}

func (s *bookingService) ListMentorServices(ctx context.Context, mentorId uuid.UUID) ([]*dto.MentorServiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	services, err := uow.BookingRepository().FindAllServices(ctx,
		specification.Filter("mentor_id", mentorId),
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MentorServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, s.serviceToResponse(ctx, svc, nil))
	}
	return result, nil
}

func (s *bookingService) CreateService(ctx context.Context, mentorId uuid.UUID, req *dto.UpsertMentorServiceRequest) (*dto.MentorServiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	svc := &entity.MentorService{
		Id:              uuid.New(),
		MentorId:        mentorId,
		ServiceType:     req.ServiceType,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := uow.BookingRepository().CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return s.serviceToResponse(ctx, svc, nil), nil
}

func (s *bookingService) UpdateService(ctx context.Context, mentorId, serviceId uuid.UUID, req *dto.UpsertMentorServiceRequest) (*dto.MentorServiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	svc, err := uow.BookingRepository().FindOneService(ctx,
		specification.ByID{ID: serviceId},
		specification.Filter("mentor_id", mentorId),
	)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, errors.New(constant.MsgResourceNotFound)
	}

	svc.ServiceType = req.ServiceType
	svc.Title = req.Title
	svc.Description = req.Description
	svc.DurationMinutes = req.DurationMinutes
	svc.Price = req.Price
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := uow.BookingRepository().UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	return s.serviceToResponse(ctx, svc, nil), nil
}

// --- Bookings ---

func bookingToResponse(b *entity.Booking) *dto.BookingResponse {
	var notes *string
	if b.StudentNotes != "" {
		notes = &b.StudentNotes
	}
	return &dto.BookingResponse{
		Id:              b.Id,
		ServiceId:       b.ServiceId,
		MentorId:        b.MentorId,
		StudentId:       b.StudentId,
		ScheduledStart:  b.ScheduledStart,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		RescheduleCount: b.RescheduleCount,
		MeetLink:        b.MeetLink,
		StudentNotes:    notes,
		CreatedAt:       b.CreatedAt,
	}
}

// countUpcomingConfirmed counts the student's confirmed bookings that
// have not started yet; the concurrency limit is checked against this
// number.
func (s *bookingService) countUpcomingConfirmed(ctx context.Context, uow unitofwork.UnitOfWork, studentId uuid.UUID, now time.Time) (int64, error) {
	return uow.BookingRepository().CountBookings(ctx,
		specification.StudentOwnedBy{StudentID: studentId},
		specification.Filter("status", string(entity.BookingStatusConfirmed)),
		specification.StartsAfter{Instant: now},
	)
}

func (s *bookingService) CreateBooking(ctx context.Context, studentId uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	svc, err := uow.BookingRepository().FindOneService(ctx,
		specification.ByID{ID: req.ServiceId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, errors.New(constant.MsgResourceNotFound)
	}

	pol, err := s.effectivePolicy(ctx, uow, svc.Id)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.countUpcomingConfirmed(ctx, uow, studentId, now)
	if err != nil {
		return nil, err
	}
	if !policy.CanBook(pol, int(upcoming), req.ScheduledStart, now) {
		if int(upcoming) >= pol.MaxConcurrentBookings {
			return nil, ErrConcurrentLimit
		}
		return nil, ErrBookingTooFar
	}

	booking := &entity.Booking{
		Id:              uuid.New(),
		ServiceId:       svc.Id,
		MentorId:        svc.MentorId,
		StudentId:       studentId,
		ScheduledStart:  req.ScheduledStart,
		DurationMinutes: svc.DurationMinutes,
		Status:          entity.BookingStatusConfirmed,
	}
	if req.StudentNotes != nil {
		booking.StudentNotes = *req.StudentNotes
	}

	if err := uow.BookingRepository().CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publisher.PublishBookingEvent(ctx, events.TypeBookingCreated, booking.Id, booking.StudentId, booking.MentorId, string(booking.Status))
	s.logger.Info("BOOKING", "Booking created", map[string]interface{}{
		"booking_id": booking.Id.String(),
		"student_id": studentId.String(),
		"service_id": svc.Id.String(),
	})

	return bookingToResponse(booking), nil
}

func (s *bookingService) RescheduleBooking(ctx context.Context, studentId, bookingId uuid.UUID, req *dto.RescheduleBookingRequest) (*dto.BookingResponse, error) {
	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindOneBooking(ctx,
		specification.ByID{ID: bookingId},
		specification.StudentOwnedBy{StudentID: studentId},
	)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	pol, err := s.effectivePolicy(ctx, uow, booking.ServiceId)
	if err != nil {
		return nil, err
	}

	limits := policy.Compute(booking, pol, now)
	if !limits.CanReschedule {
		return nil, ErrRescheduleNotAllowed
	}

	booking.ScheduledStart = req.ScheduledStart
	booking.RescheduleCount++

	if err := uow.BookingRepository().UpdateBooking(ctx, booking); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisher.PublishBookingEvent(ctx, events.TypeBookingRescheduled, booking.Id, booking.StudentId, booking.MentorId, string(booking.Status))
	return bookingToResponse(booking), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, studentId, bookingId uuid.UUID, req *dto.CancelBookingRequest) (*dto.BookingResponse, error) {
	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOneBooking(ctx,
		specification.ByID{ID: bookingId},
		specification.StudentOwnedBy{StudentID: studentId},
	)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return bookingToResponse(booking), nil
	}

	pol, err := s.effectivePolicy(ctx, uow, booking.ServiceId)
	if err != nil {
		return nil, err
	}

	// A late cancel is never blocked, only reclassified as a no-show.
	booking.Status = policy.CancelStatus(booking, pol, now)

	if err := uow.BookingRepository().UpdateBooking(ctx, booking); err != nil {
		return nil, err
	}

	eventType := events.TypeBookingCancelled
	if booking.Status == entity.BookingStatusNoShow {
		eventType = events.TypeBookingNoShow
	}
	s.publisher.PublishBookingEvent(ctx, eventType, booking.Id, booking.StudentId, booking.MentorId, string(booking.Status))
	s.logger.Info("BOOKING", "Booking cancelled", map[string]interface{}{
		"booking_id": booking.Id.String(),
		"status":     string(booking.Status),
		"reason":     req.Reason,
	})

	return bookingToResponse(booking), nil
}

func (s *bookingService) GetBookingDetail(ctx context.Context, userId, bookingId uuid.UUID) (*dto.BookingDetailResponse, error) {
	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOneBooking(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return nil, err
	}
	if booking == nil || (booking.StudentId != userId && booking.MentorId != userId) {
		return nil, ErrBookingNotFound
	}

	pol, err := s.effectivePolicy(ctx, uow, booking.ServiceId)
	if err != nil {
		return nil, err
	}
	limits := policy.Compute(booking, pol, now)

	return &dto.BookingDetailResponse{
		Booking: *bookingToResponse(booking),
		Limits: dto.BookingLimitsResponse{
			CanReschedule:        limits.CanReschedule,
			CanCancel:            limits.CanCancel,
			RemainingReschedules: limits.RemainingReschedules,
			IsLateCancel:         limits.IsLateCancel,
			HoursUntil:           limits.HoursUntil,
		},
	}, nil
}

func (s *bookingService) ListStudentBookings(ctx context.Context, studentId uuid.UUID) ([]*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	bookings, err := uow.BookingRepository().FindAllBookings(ctx,
		specification.StudentOwnedBy{StudentID: studentId},
		specification.OrderBy{Field: "scheduled_start", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, bookingToResponse(b))
	}
	return result, nil
}

func (s *bookingService) ListMentorBookings(ctx context.Context, mentorId uuid.UUID) ([]*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	bookings, err := uow.BookingRepository().FindAllBookings(ctx,
		specification.MentorOwnedBy{MentorID: mentorId},
		specification.OrderBy{Field: "scheduled_start", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, bookingToResponse(b))
	}
	return result, nil
}
