package implementation

import (
	"context"
	"errors"

	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/mapper"
	"eua-na-pratica-be/internal/model"
	"eua-na-pratica-be/internal/repository/contract"
	"eua-na-pratica-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CancellationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewCancellationRepository(db *gorm.DB) contract.CancellationRepository {
	return &CancellationRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *CancellationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CancellationRepositoryImpl) Create(ctx context.Context, cancellation *entity.Cancellation) error {
	m := r.mapper.CancellationToModel(cancellation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*cancellation = *r.mapper.CancellationToEntity(m)
	return nil
}

func (r *CancellationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Cancellation, error) {
	var m model.Cancellation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CancellationToEntity(&m), nil
}

func (r *CancellationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Cancellation, error) {
	var models []*model.Cancellation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Cancellation, len(models))
	for i, m := range models {
		entities[i] = r.mapper.CancellationToEntity(m)
	}
	return entities, nil
}
