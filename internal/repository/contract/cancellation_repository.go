package contract

import (
	"context"

	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/repository/specification"
)

type CancellationRepository interface {
	Create(ctx context.Context, cancellation *entity.Cancellation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Cancellation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Cancellation, error)
}
