package contract

import (
	"context"

	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BookingRepository interface {
	// Mentor Services
	CreateService(ctx context.Context, svc *entity.MentorService) error
	UpdateService(ctx context.Context, svc *entity.MentorService) error
	FindOneService(ctx context.Context, specs ...specification.Specification) (*entity.MentorService, error)
	FindAllServices(ctx context.Context, specs ...specification.Specification) ([]*entity.MentorService, error)

	// Bookings
	CreateBooking(ctx context.Context, booking *entity.Booking) error
	UpdateBooking(ctx context.Context, booking *entity.Booking) error
	FindOneBooking(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindAllBookings(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	CountBookings(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Policies
	CreatePolicy(ctx context.Context, policy *entity.BookingPolicy) error
	UpdatePolicy(ctx context.Context, policy *entity.BookingPolicy) error
	DeletePolicy(ctx context.Context, id uuid.UUID) error
	FindPolicyForService(ctx context.Context, serviceId uuid.UUID) (*entity.BookingPolicy, error)
	FindGlobalPolicy(ctx context.Context) (*entity.BookingPolicy, error)
	FindAllPolicies(ctx context.Context, specs ...specification.Specification) ([]*entity.BookingPolicy, error)
}
