package mapper

import (
	"encoding/json"

	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/model"

	"gorm.io/datatypes"
)

type PlanMapper struct{}

func NewPlanMapper() *PlanMapper {
	return &PlanMapper{}
}

func (m *PlanMapper) ToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	overrides := map[string]interface{}{}
	if len(p.FeatureOverrides) > 0 {
		// Malformed stored JSON degrades to an empty override set;
		// entitlement resolution then falls back to defaults.
		_ = json.Unmarshal(p.FeatureOverrides, &overrides)
	}
	discounts := map[string]float64{}
	if len(p.Discounts) > 0 {
		_ = json.Unmarshal(p.Discounts, &discounts)
	}
	return &entity.Plan{
		Id:               p.Id,
		Slug:             p.Slug,
		Name:             p.Name,
		Theme:            p.Theme,
		Price:            p.Price,
		BillingCycle:     entity.BillingCycle(p.BillingCycle),
		MonthlyLimit:     p.MonthlyLimit,
		FeatureOverrides: overrides,
		Discounts:        discounts,
		IsActive:         p.IsActive,
		SortOrder:        p.SortOrder,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (m *PlanMapper) ToModel(p *entity.Plan) *model.Plan {
	if p == nil {
		return nil
	}
	overrides, _ := json.Marshal(p.FeatureOverrides)
	discounts, _ := json.Marshal(p.Discounts)
	return &model.Plan{
		Id:               p.Id,
		Slug:             p.Slug,
		Name:             p.Name,
		Theme:            p.Theme,
		Price:            p.Price,
		BillingCycle:     string(p.BillingCycle),
		MonthlyLimit:     p.MonthlyLimit,
		FeatureOverrides: datatypes.JSON(overrides),
		Discounts:        datatypes.JSON(discounts),
		IsActive:         p.IsActive,
		SortOrder:        p.SortOrder,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (m *PlanMapper) CounterToEntity(c *model.UsageCounter) *entity.UsageCounter {
	if c == nil {
		return nil
	}
	return &entity.UsageCounter{
		Id:        c.Id,
		UserId:    c.UserId,
		Meter:     c.Meter,
		Period:    c.Period,
		Used:      c.Used,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *PlanMapper) CounterToModel(c *entity.UsageCounter) *model.UsageCounter {
	if c == nil {
		return nil
	}
	return &model.UsageCounter{
		Id:        c.Id,
		UserId:    c.UserId,
		Meter:     c.Meter,
		Period:    c.Period,
		Used:      c.Used,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
