package entitlement

import "github.com/google/uuid"

// Entitlement is the fully resolved bundle for one user: the plan they
// sit on plus their metered usage for the current month.
type Entitlement struct {
	PlanId        uuid.UUID
	PlanName      string
	PlanSlug      string
	Theme         string
	Features      FeatureSet
	Discounts     map[string]float64
	UsedThisMonth int
	MonthlyLimit  int
}

// Remaining is the monthly quota left. It is a plain subtraction over
// backend-provided counters, floored at zero.
func (e Entitlement) Remaining() int {
	r := e.MonthlyLimit - e.UsedThisMonth
	if r < 0 {
		return 0
	}
	return r
}

// HasFeature reports whether the resolved plan enables a boolean
// feature. Unknown keys are false.
func (e Entitlement) HasFeature(key string) bool {
	return e.Features.Has(key)
}

// DiscountForServiceType resolves the plan discount for a service type
// through the static type-to-category map.
func (e Entitlement) DiscountForServiceType(serviceType string) float64 {
	return DiscountForServiceType(e.Discounts, serviceType)
}

// FailClosed is the entitlement handed out when plan resolution fails:
// the basic plan with a single monthly credit and every flag off, so a
// backend outage never grants premium access.
func FailClosed() Entitlement {
	return Entitlement{
		PlanName:      "Basic",
		PlanSlug:      "basic",
		Theme:         "default",
		Features:      Defaults(),
		Discounts:     map[string]float64{},
		UsedThisMonth: 0,
		MonthlyLimit:  1,
	}
}
