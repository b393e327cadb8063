package nutrition

import "strings"

// Storage ranges for user-entered biometrics. These are wider checks than a
// simple positivity test and apply when biometrics are saved, not when a
// profile is computed.
const (
	MinHeightInches = 20
	MaxHeightInches = 100
	MinWeightLbs    = 50
	MaxWeightLbs    = 661
)

// FieldErrors maps an input field name to a human-readable problem.
type FieldErrors map[string]string

// BiometricsUpdate carries optional biometric fields. Nil fields are not checked.
type BiometricsUpdate struct {
	Age           *int
	HeightInches  *float64
	WeightLbs     *float64
	Sex           *string
	ActivityLevel *string
	Goal          *string
}

// ValidateBiometrics checks every provided field and collects all problems.
// Unlike Calculate, it accepts "other" as a sex since that value may be stored.
func ValidateBiometrics(u BiometricsUpdate) FieldErrors {
	errs := FieldErrors{}

	if u.Age != nil && (*u.Age < minAge || *u.Age > maxAge) {
		errs["age"] = "Age must be between 13 and 120"
	}
	if u.HeightInches != nil && (*u.HeightInches < MinHeightInches || *u.HeightInches > MaxHeightInches) {
		errs["height"] = "Height must be between 20 and 100 inches (1.67ft to 8.33ft)"
	}
	if u.WeightLbs != nil && !ValidWeight(*u.WeightLbs) {
		errs["weight"] = "Weight must be between 50 and 661 pounds"
	}
	if u.Sex != nil {
		switch normalize(*u.Sex) {
		case "male", "female", "other":
		default:
			errs["sex"] = "Sex must be 'male', 'female', or 'other'"
		}
	}
	if u.ActivityLevel != nil {
		if _, ok := ParseActivityLevel(*u.ActivityLevel); !ok {
			errs["activity_level"] = "Activity level must be one of: " + strings.Join(optionValues(activityOptions), ", ")
		}
	}
	if u.Goal != nil {
		if _, ok := ParseGoal(*u.Goal); !ok {
			errs["goal"] = "Goal must be one of: " + strings.Join(optionValues(goalOptions), ", ")
		}
	}

	return errs
}

// ValidWeight reports whether lbs is inside the storable weight range.
func ValidWeight(lbs float64) bool {
	return lbs >= MinWeightLbs && lbs <= MaxWeightLbs
}
