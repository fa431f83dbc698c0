package mapper

import (
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	return &entity.UserSubscription{
		Id:                s.Id,
		UserId:            s.UserId,
		PlanId:            s.PlanId,
		Status:            entity.SubscriptionStatus(s.Status),
		PaymentStatus:     entity.PaymentStatus(s.PaymentStatus),
		BillingCycle:      entity.BillingCycle(s.BillingCycle),
		NextBillingDate:   s.NextBillingDate,
		GracePeriodEndsAt: s.GracePeriodEndsAt,
		ExpiresAt:         s.ExpiresAt,
		CancelAtPeriodEnd: s.CancelAtPeriodEnd,
		DunningAttempts:   s.DunningAttempts,
		GatewayOrderId:    s.GatewayOrderId,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	return &model.UserSubscription{
		Id:                s.Id,
		UserId:            s.UserId,
		PlanId:            s.PlanId,
		Status:            string(s.Status),
		PaymentStatus:     string(s.PaymentStatus),
		BillingCycle:      string(s.BillingCycle),
		NextBillingDate:   s.NextBillingDate,
		GracePeriodEndsAt: s.GracePeriodEndsAt,
		ExpiresAt:         s.ExpiresAt,
		CancelAtPeriodEnd: s.CancelAtPeriodEnd,
		DunningAttempts:   s.DunningAttempts,
		GatewayOrderId:    s.GatewayOrderId,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) CancellationToEntity(c *model.Cancellation) *entity.Cancellation {
	if c == nil {
		return nil
	}
	return &entity.Cancellation{
		Id:             c.Id,
		SubscriptionId: c.SubscriptionId,
		UserId:         c.UserId,
		Reason:         c.Reason,
		Feedback:       c.Feedback,
		Status:         entity.CancellationStatus(c.Status),
		EffectiveDate:  c.EffectiveDate,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *SubscriptionMapper) CancellationToModel(c *entity.Cancellation) *model.Cancellation {
	if c == nil {
		return nil
	}
	return &model.Cancellation{
		Id:             c.Id,
		SubscriptionId: c.SubscriptionId,
		UserId:         c.UserId,
		Reason:         c.Reason,
		Feedback:       c.Feedback,
		Status:         string(c.Status),
		EffectiveDate:  c.EffectiveDate,
		CreatedAt:      c.CreatedAt,
	}
}
