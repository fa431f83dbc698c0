// FILE: internal/service/entitlement_service.go
package service

import (
	"context"
	"errors"
	"time"

	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"
	"eua-na-pratica-be/pkg/entitlement"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

var ErrMonthlyLimitReached = errors.New("monthly limit reached")

const (
	planCacheTTL = 5 * time.Minute
	planCacheKey = "plan_catalog"
)

type IEntitlementService interface {
	// Resolve never returns an error: any backend failure yields the
	// fail-closed basic entitlement.
	Resolve(ctx context.Context, userId uuid.UUID) entitlement.Entitlement
	GetEntitlement(ctx context.Context, userId uuid.UUID) (*dto.EntitlementResponse, error)
	// ConsumeUsage burns one unit of a metered feature, enforcing the
	// monthly limit.
	ConsumeUsage(ctx context.Context, userId uuid.UUID, meter string) error
	GetDiscount(ctx context.Context, userId uuid.UUID, serviceType string) (*dto.DiscountQueryResponse, error)
	ListPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	InvalidatePlanCache()
}

type entitlementService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
	logger     logger.ILogger
	now        func() time.Time
}

func NewEntitlementService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IEntitlementService {
	return &entitlementService{
		uowFactory: uowFactory,
		cache:      gocache.New(planCacheTTL, 10*time.Minute),
		logger:     log,
		now:        time.Now,
	}
}

func currentPeriod(now time.Time) string {
	return now.Format("2006-01")
}

func (s *entitlementService) loadCatalog(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.Plan, error) {
	if cached, found := s.cache.Get(planCacheKey); found {
		return cached.([]*entity.Plan), nil
	}

	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "sort_order"},
	)
	if err != nil {
		return nil, err
	}
	s.cache.Set(planCacheKey, plans, planCacheTTL)
	return plans, nil
}

func (s *entitlementService) planBySlug(ctx context.Context, uow unitofwork.UnitOfWork, slug string) (*entity.Plan, error) {
	plans, err := s.loadCatalog(ctx, uow)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

// Resolve walks user -> subscription -> plan -> usage counter. Every
// failure path falls back to the closed basic entitlement rather than
// propagating an error to feature gates.
func (s *entitlementService) Resolve(ctx context.Context, userId uuid.UUID) entitlement.Entitlement {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.StatusIn{Statuses: []string{
			string(entity.SubscriptionStatusTrial),
			string(entity.SubscriptionStatusActive),
			string(entity.SubscriptionStatusPastDue),
			string(entity.SubscriptionStatusGracePeriod),
		}},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		s.logger.Warn("Entitlement", "Subscription lookup failed, failing closed", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
		return entitlement.FailClosed()
	}

	var plan *entity.Plan
	if sub != nil {
		plan, err = uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	} else {
		// No live subscription means the free tier.
		plan, err = s.planBySlug(ctx, uow, entity.PlanSlugBasic)
	}
	if err != nil || plan == nil {
		s.logger.Warn("Entitlement", "Plan lookup failed, failing closed", map[string]interface{}{
			"user_id": userId,
		})
		return entitlement.FailClosed()
	}

	used, err := s.usedThisMonth(ctx, uow, userId)
	if err != nil {
		s.logger.Warn("Entitlement", "Usage lookup failed, failing closed", map[string]interface{}{
			"user_id": userId, "error": err.Error(),
		})
		return entitlement.FailClosed()
	}

	return entitlement.Entitlement{
		PlanId:        plan.Id,
		PlanName:      plan.Name,
		PlanSlug:      plan.Slug,
		Theme:         plan.Theme,
		Features:      entitlement.Resolve(plan.FeatureOverrides),
		Discounts:     plan.Discounts,
		UsedThisMonth: used,
		MonthlyLimit:  plan.MonthlyLimit,
	}
}

// usedThisMonth reads the resume-analysis counter for the current
// period. The calendar-month reset is implicit: a new period key means
// a fresh (missing) row, which reads as zero.
func (s *entitlementService) usedThisMonth(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (int, error) {
	counter, err := uow.UsageRepository().FindCounter(ctx, userId, entity.MeterResumeAnalyses, currentPeriod(s.now()))
	if err != nil {
		return 0, err
	}
	if counter == nil {
		return 0, nil
	}
	return counter.Used, nil
}

func (s *entitlementService) GetEntitlement(ctx context.Context, userId uuid.UUID) (*dto.EntitlementResponse, error) {
	ent := s.Resolve(ctx, userId)
	return &dto.EntitlementResponse{
		PlanId:        ent.PlanId,
		PlanSlug:      ent.PlanSlug,
		PlanName:      ent.PlanName,
		Theme:         ent.Theme,
		Features:      ent.Features.Map(),
		Discounts:     ent.Discounts,
		UsedThisMonth: ent.UsedThisMonth,
		MonthlyLimit:  ent.MonthlyLimit,
		Remaining:     ent.Remaining(),
	}, nil
}

func (s *entitlementService) ConsumeUsage(ctx context.Context, userId uuid.UUID, meter string) error {
	ent := s.Resolve(ctx, userId)
	if ent.Remaining() <= 0 {
		return ErrMonthlyLimitReached
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, err := uow.UsageRepository().Increment(ctx, userId, meter, currentPeriod(s.now()))
	return err
}

func (s *entitlementService) GetDiscount(ctx context.Context, userId uuid.UUID, serviceType string) (*dto.DiscountQueryResponse, error) {
	ent := s.Resolve(ctx, userId)
	return &dto.DiscountQueryResponse{
		ServiceType: serviceType,
		Percent:     ent.DiscountForServiceType(serviceType),
	}, nil
}

func (s *entitlementService) ListPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := s.loadCatalog(ctx, uow)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, &dto.PlanResponse{
			Id:           p.Id,
			Slug:         p.Slug,
			Name:         p.Name,
			Theme:        p.Theme,
			Price:        p.Price,
			BillingCycle: string(p.BillingCycle),
			MonthlyLimit: p.MonthlyLimit,
			Features:     entitlement.Resolve(p.FeatureOverrides).Map(),
			Discounts:    p.Discounts,
			SortOrder:    p.SortOrder,
		})
	}
	return res, nil
}

func (s *entitlementService) InvalidatePlanCache() {
	s.cache.Delete(planCacheKey)
}
