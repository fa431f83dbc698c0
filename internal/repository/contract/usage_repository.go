package contract

import (
	"context"

	"eua-na-pratica-be/internal/entity"

	"github.com/google/uuid"
)

type UsageRepository interface {
	// FindCounter returns nil when no row exists for the period yet.
	FindCounter(ctx context.Context, userId uuid.UUID, meter, period string) (*entity.UsageCounter, error)
	// Increment upserts the (user, meter, period) row and bumps Used.
	Increment(ctx context.Context, userId uuid.UUID, meter, period string) (*entity.UsageCounter, error)
	ResetCounter(ctx context.Context, userId uuid.UUID, meter, period string) error
}
