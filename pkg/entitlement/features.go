// Package entitlement resolves a plan's stored feature overrides and
// discount table into the closed set of known feature keys the rest of
// the platform gates on. Unknown keys in stored data are ignored;
// missing keys fall back to defaults, so lookups always fail closed.
package entitlement

// Known boolean feature keys.
const (
	FeaturePrimeJobs       = "prime_jobs"
	FeatureShowPowerVerbs  = "show_power_verbs"
	FeatureResumeAIReview  = "resume_ai_review"
	FeaturePriorityBooking = "priority_booking"
	FeatureCommunityAccess = "community_access"
	FeatureMentorChat      = "mentor_chat"

	// Integer feature key.
	FeatureResumePassLimit = "resume_pass_limit"
)

// FeatureSet is the resolved, closed feature map for one plan. Every
// known key is always present after Resolve.
type FeatureSet struct {
	PrimeJobs       bool
	ShowPowerVerbs  bool
	ResumeAIReview  bool
	PriorityBooking bool
	CommunityAccess bool
	MentorChat      bool
	ResumePassLimit int
}

// Defaults returns the all-off feature set. This doubles as the
// fail-closed bundle used when plan resolution errors out.
func Defaults() FeatureSet {
	return FeatureSet{}
}

// Resolve merges stored plan overrides under the defaults. Values of
// the wrong type and keys outside the known set are silently ignored.
func Resolve(overrides map[string]interface{}) FeatureSet {
	fs := Defaults()
	for key, raw := range overrides {
		switch key {
		case FeaturePrimeJobs:
			if v, ok := asBool(raw); ok {
				fs.PrimeJobs = v
			}
		case FeatureShowPowerVerbs:
			if v, ok := asBool(raw); ok {
				fs.ShowPowerVerbs = v
			}
		case FeatureResumeAIReview:
			if v, ok := asBool(raw); ok {
				fs.ResumeAIReview = v
			}
		case FeaturePriorityBooking:
			if v, ok := asBool(raw); ok {
				fs.PriorityBooking = v
			}
		case FeatureCommunityAccess:
			if v, ok := asBool(raw); ok {
				fs.CommunityAccess = v
			}
		case FeatureMentorChat:
			if v, ok := asBool(raw); ok {
				fs.MentorChat = v
			}
		case FeatureResumePassLimit:
			if v, ok := asInt(raw); ok {
				fs.ResumePassLimit = v
			}
		}
	}
	return fs
}

// Has reports whether the named boolean feature is enabled. Unknown
// keys return false; the integer key is not a boolean feature and also
// returns false.
func (fs FeatureSet) Has(key string) bool {
	switch key {
	case FeaturePrimeJobs:
		return fs.PrimeJobs
	case FeatureShowPowerVerbs:
		return fs.ShowPowerVerbs
	case FeatureResumeAIReview:
		return fs.ResumeAIReview
	case FeaturePriorityBooking:
		return fs.PriorityBooking
	case FeatureCommunityAccess:
		return fs.CommunityAccess
	case FeatureMentorChat:
		return fs.MentorChat
	default:
		return false
	}
}

// Map renders the full known key set, defaults filling any gap.
func (fs FeatureSet) Map() map[string]interface{} {
	return map[string]interface{}{
		FeaturePrimeJobs:       fs.PrimeJobs,
		FeatureShowPowerVerbs:  fs.ShowPowerVerbs,
		FeatureResumeAIReview:  fs.ResumeAIReview,
		FeaturePriorityBooking: fs.PriorityBooking,
		FeatureCommunityAccess: fs.CommunityAccess,
		FeatureMentorChat:      fs.MentorChat,
		FeatureResumePassLimit: fs.ResumePassLimit,
	}
}

func asBool(raw interface{}) (bool, bool) {
	v, ok := raw.(bool)
	return v, ok
}

func asInt(raw interface{}) (int, bool) {
	// JSON numbers decode as float64
	switch v := raw.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
