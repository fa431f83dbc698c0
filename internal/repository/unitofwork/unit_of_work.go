package unitofwork

import (
	"context"

	"eua-na-pratica-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SubscriptionRepository() contract.SubscriptionRepository
	BookingRepository() contract.BookingRepository
	UsageRepository() contract.UsageRepository
	InvitationRepository() contract.InvitationRepository
	ReportRepository() contract.ReportRepository
	CancellationRepository() contract.CancellationRepository
}
