package implementation

import (
	"context"
	"errors"

	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/mapper"
	"eua-na-pratica-be/internal/model"
	"eua-na-pratica-be/internal/repository/contract"
	"eua-na-pratica-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookingMapper
}

func NewBookingRepository(db *gorm.DB) contract.BookingRepository {
	return &BookingRepositoryImpl{
		db:     db,
		mapper: mapper.NewBookingMapper(),
	}
}

func (r *BookingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Mentor Services

func (r *BookingRepositoryImpl) CreateService(ctx context.Context, svc *entity.MentorService) error {
	m := r.mapper.ServiceToModel(svc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*svc = *r.mapper.ServiceToEntity(m)
	return nil
}

func (r *BookingRepositoryImpl) UpdateService(ctx context.Context, svc *entity.MentorService) error {
	m := r.mapper.ServiceToModel(svc)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*svc = *r.mapper.ServiceToEntity(m)
	return nil
}

func (r *BookingRepositoryImpl) FindOneService(ctx context.Context, specs ...specification.Specification) (*entity.MentorService, error) {
	var m model.MentorService
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ServiceToEntity(&m), nil
}

func (r *BookingRepositoryImpl) FindAllServices(ctx context.Context, specs ...specification.Specification) ([]*entity.MentorService, error) {
	var models []*model.MentorService
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.MentorService, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ServiceToEntity(m)
	}
	return entities, nil
}

// Bookings

func (r *BookingRepositoryImpl) CreateBooking(ctx context.Context, booking *entity.Booking) error {
	m := r.mapper.BookingToModel(booking)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*booking = *r.mapper.BookingToEntity(m)
	return nil
}

func (r *BookingRepositoryImpl) UpdateBooking(ctx context.Context, booking *entity.Booking) error {
	m := r.mapper.BookingToModel(booking)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*booking = *r.mapper.BookingToEntity(m)
	return nil
}

func (r *BookingRepositoryImpl) FindOneBooking(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	var m model.Booking
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.BookingToEntity(&m), nil
}

func (r *BookingRepositoryImpl) FindAllBookings(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var models []*model.Booking
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Booking, len(models))
	for i, m := range models {
		entities[i] = r.mapper.BookingToEntity(m)
	}
	return entities, nil
}

func (r *BookingRepositoryImpl) CountBookings(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Booking{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

// Policies

func (r *BookingRepositoryImpl) CreatePolicy(ctx context.Context, policy *entity.BookingPolicy) error {
	m := r.mapper.PolicyToModel(policy)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*policy = *r.mapper.PolicyToEntity(m)
	return nil
}

func (r *BookingRepositoryImpl) UpdatePolicy(ctx context.Context, policy *entity.BookingPolicy) error {
	m := r.mapper.PolicyToModel(policy)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*policy = *r.mapper.PolicyToEntity(m)
	return nil
}

func (r *BookingRepositoryImpl) DeletePolicy(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BookingPolicy{}, id).Error
}

func (r *BookingRepositoryImpl) FindPolicyForService(ctx context.Context, serviceId uuid.UUID) (*entity.BookingPolicy, error) {
	var m model.BookingPolicy
	err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PolicyToEntity(&m), nil
}

func (r *BookingRepositoryImpl) FindGlobalPolicy(ctx context.Context) (*entity.BookingPolicy, error) {
	var m model.BookingPolicy
	err := r.db.WithContext(ctx).
		Where("service_id IS NULL").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PolicyToEntity(&m), nil
}

func (r *BookingRepositoryImpl) FindAllPolicies(ctx context.Context, specs ...specification.Specification) ([]*entity.BookingPolicy, error) {
	var models []*model.BookingPolicy
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.BookingPolicy, len(models))
	for i, m := range models {
		entities[i] = r.mapper.PolicyToEntity(m)
	}
	return entities, nil
}
