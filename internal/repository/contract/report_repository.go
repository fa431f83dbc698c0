package contract

import (
	"context"

	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/repository/specification"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.ResumeReport) error
	Update(ctx context.Context, report *entity.ResumeReport) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResumeReport, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResumeReport, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
