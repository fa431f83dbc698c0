package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMergesOverridesUnderDefaults(t *testing.T) {
	fs := Resolve(map[string]interface{}{
		"prime_jobs":        true,
		"show_power_verbs":  true,
		"resume_pass_limit": float64(10), // JSON numbers decode as float64
		"made_up_key":       true,
		"mentor_chat":       "yes", // wrong type, ignored
	})

	assert.True(t, fs.PrimeJobs)
	assert.True(t, fs.ShowPowerVerbs)
	assert.Equal(t, 10, fs.ResumePassLimit)
	assert.False(t, fs.MentorChat, "wrong-typed override must keep the default")
	assert.False(t, fs.ResumeAIReview)
}

func TestResolveNilOverrides(t *testing.T) {
	fs := Resolve(nil)
	assert.Equal(t, Defaults(), fs)
}

func TestHasUnknownKeyIsFalse(t *testing.T) {
	fs := Resolve(map[string]interface{}{"prime_jobs": true})

	assert.True(t, fs.Has(FeaturePrimeJobs))
	assert.False(t, fs.Has("definitely_not_a_feature"))
	assert.False(t, fs.Has(""))
	// The integer key is metered, not a boolean gate.
	assert.False(t, fs.Has(FeatureResumePassLimit))
}

func TestMapAlwaysCarriesFullKeySet(t *testing.T) {
	m := Defaults().Map()

	keys := []string{
		FeaturePrimeJobs, FeatureShowPowerVerbs, FeatureResumeAIReview,
		FeaturePriorityBooking, FeatureCommunityAccess, FeatureMentorChat,
		FeatureResumePassLimit,
	}
	for _, k := range keys {
		assert.Contains(t, m, k)
	}
	assert.Len(t, m, len(keys))
}

func TestRemainingFloorsAtZero(t *testing.T) {
	e := Entitlement{MonthlyLimit: 10, UsedThisMonth: 3}
	assert.Equal(t, 7, e.Remaining())

	e.UsedThisMonth = 12
	assert.Equal(t, 0, e.Remaining())
}

func TestFailClosedDeniesPremiumAccess(t *testing.T) {
	e := FailClosed()

	assert.Equal(t, "basic", e.PlanSlug)
	assert.Equal(t, 1, e.MonthlyLimit)
	assert.Equal(t, 1, e.Remaining())
	assert.False(t, e.HasFeature(FeaturePrimeJobs))
	assert.False(t, e.HasFeature(FeatureMentorChat))
	assert.Zero(t, e.DiscountForServiceType("resume_review"))
}

func TestDiscountForServiceType(t *testing.T) {
	discounts := map[string]float64{
		"base":      5,
		"mentoring": 20,
	}

	tests := []struct {
		name        string
		serviceType string
		want        float64
	}{
		{"mapped category", "mock_interview", 20},
		{"category missing from table falls back to base", "visa_consulting", 5},
		{"unmapped type falls back to base", "something_new", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountForServiceType(discounts, tt.serviceType))
		})
	}

	assert.Zero(t, DiscountForServiceType(map[string]float64{}, "mock_interview"), "empty table yields zero")
	assert.Zero(t, DiscountForServiceType(nil, "mock_interview"), "nil table yields zero")
}
