// FILE: internal/dto/plan_dto.go
package dto

import (
	"github.com/google/uuid"
)

type PlanResponse struct {
	Id           uuid.UUID          `json:"id"`
	Slug         string             `json:"slug"`
	Name         string             `json:"name"`
	Theme        string             `json:"theme"`
	Price        float64            `json:"price"`
	BillingCycle string             `json:"billing_cycle"`
	MonthlyLimit int                `json:"monthly_limit"`
	Features     map[string]any     `json:"features"`
	Discounts    map[string]float64 `json:"discounts"`
	SortOrder    int                `json:"sort_order"`
}

type UpsertPlanRequest struct {
	Slug         string             `json:"slug" validate:"required,oneof=basic pro vip"`
	Name         string             `json:"name" validate:"required"`
	Theme        string             `json:"theme"`
	Price        float64            `json:"price" validate:"gte=0"`
	BillingCycle string             `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
	MonthlyLimit int                `json:"monthly_limit" validate:"gte=0"`
	Features     map[string]any     `json:"features"`
	Discounts    map[string]float64 `json:"discounts"`
	IsActive     *bool              `json:"is_active"`
	SortOrder    int                `json:"sort_order"`
}

// EntitlementResponse is what the frontend consumes to gate features.
type EntitlementResponse struct {
	PlanId        uuid.UUID          `json:"plan_id"`
	PlanSlug      string             `json:"plan_slug"`
	PlanName      string             `json:"plan_name"`
	Theme         string             `json:"theme"`
	Features      map[string]any     `json:"features"`
	Discounts     map[string]float64 `json:"discounts"`
	UsedThisMonth int                `json:"used_this_month"`
	MonthlyLimit  int                `json:"monthly_limit"`
	Remaining     int                `json:"remaining"`
}

type DiscountQueryResponse struct {
	ServiceType string  `json:"service_type"`
	Percent     float64 `json:"percent"`
}
