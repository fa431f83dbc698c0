package dashboard

import (
	"context"
	"time"

	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"
)

// Aggregator assembles the admin dashboard numbers.
type Aggregator struct {
	logger logger.ILogger
}

func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.DashboardResponse, error) {
	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	pendingUsers, err := uow.UserRepository().CountByStatus(ctx, string(entity.UserStatusPending))
	if err != nil {
		return nil, err
	}

	totalRevenue, err := uow.SubscriptionRepository().GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	activeSubs, err := uow.SubscriptionRepository().CountActiveSubscribers(ctx)
	if err != nil {
		return nil, err
	}

	pastDue, err := uow.SubscriptionRepository().CountByStatus(ctx, string(entity.SubscriptionStatusPastDue))
	if err != nil {
		return nil, err
	}

	bookingsByStatus := map[string]int{}
	for _, status := range []entity.BookingStatus{
		entity.BookingStatusConfirmed,
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
		entity.BookingStatusNoShow,
	} {
		count, err := uow.BookingRepository().CountBookings(ctx, specification.Filter("status", string(status)))
		if err != nil {
			return nil, err
		}
		bookingsByStatus[string(status)] = int(count)
	}

	return &dto.DashboardResponse{
		TotalRevenue:      totalRevenue,
		ActiveSubscribers: activeSubs,
		PastDueCount:      pastDue,
		TotalUsers:        int(totalUsers),
		PendingUsers:      pendingUsers,
		BookingsByStatus:  bookingsByStatus,
		GeneratedAt:       time.Now(),
	}, nil
}

// GetSystemLogs reads from the zap file for the admin log viewer.
func (a *Aggregator) GetSystemLogs(level string, limit, offset int) ([]dto.AdminLogEntry, error) {
	if limit < 1 {
		limit = 50
	}
	logs, err := a.logger.GetLogs(level, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]dto.AdminLogEntry, 0, len(logs))
	for _, l := range logs {
		res = append(res, dto.AdminLogEntry{
			Timestamp: l.Timestamp,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			Details:   l.Details,
		})
	}
	return res, nil
}
