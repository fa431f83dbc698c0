package implementation

import (
	"context"
	"errors"

	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/mapper"
	"eua-na-pratica-be/internal/model"
	"eua-na-pratica-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PlanMapper
}

func NewUsageRepository(db *gorm.DB) contract.UsageRepository {
	return &UsageRepositoryImpl{
		db:     db,
		mapper: mapper.NewPlanMapper(),
	}
}

func (r *UsageRepositoryImpl) FindCounter(ctx context.Context, userId uuid.UUID, meter, period string) (*entity.UsageCounter, error) {
	var m model.UsageCounter
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND meter = ? AND period = ?", userId, meter, period).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CounterToEntity(&m), nil
}

func (r *UsageRepositoryImpl) Increment(ctx context.Context, userId uuid.UUID, meter, period string) (*entity.UsageCounter, error) {
	m := &model.UsageCounter{
		UserId: userId,
		Meter:  meter,
		Period: period,
		Used:   1,
	}
	// Upsert on the (user, meter, period) unique index so concurrent
	// increments never race into duplicate rows.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "meter"}, {Name: "period"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"used":       gorm.Expr("usage_counters.used + 1"),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}
	return r.FindCounter(ctx, userId, meter, period)
}

func (r *UsageRepositoryImpl) ResetCounter(ctx context.Context, userId uuid.UUID, meter, period string) error {
	return r.db.WithContext(ctx).Model(&model.UsageCounter{}).
		Where("user_id = ? AND meter = ? AND period = ?", userId, meter, period).
		Update("used", 0).Error
}
