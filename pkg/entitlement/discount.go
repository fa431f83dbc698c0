package entitlement

// serviceTypeCategories maps a mentor service type onto the discount
// category used by the plan's discount table.
var serviceTypeCategories = map[string]string{
	"resume_review":    "mentoring",
	"mock_interview":   "mentoring",
	"career_planning":  "mentoring",
	"linkedin_review":  "mentoring",
	"visa_consulting":  "consulting",
	"tax_consulting":   "consulting",
	"group_session":    "community",
	"english_coaching": "language",
}

// DiscountCategoryBase is the fallback discount entry every plan
// discount table may carry.
const DiscountCategoryBase = "base"

// DiscountForServiceType looks up the plan discount (percent) for a
// service type. Unmapped types and categories missing from the table
// fall back to the plan's base discount, defaulting to zero.
func DiscountForServiceType(discounts map[string]float64, serviceType string) float64 {
	category, ok := serviceTypeCategories[serviceType]
	if !ok {
		category = DiscountCategoryBase
	}
	if pct, ok := discounts[category]; ok {
		return pct
	}
	return discounts[DiscountCategoryBase]
}
