package main

import (
	"regexp"
	"time"
	"unicode"

	"lg/nutrichat-api/nutrition"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 8

// Accepted ranges for a daily log entry.
const (
	maxLogCalories = 10000
	maxLogProteinG = 500
	maxLogCarbsG   = 1000
	maxLogFatG     = 500
)

const (
	msgEmail     = "Invalid email format"
	msgPassword  = "Password must be at least 8 characters with 1 uppercase, 1 lowercase, and 1 number"
	msgWeight    = "Weight must be between 50 and 661 pounds"
	msgNutrition = "Nutrition values must be reasonable (calories: 0-10000, protein: 0-500, carbs: 0-1000, fat: 0-500)"
	msgDate      = "Date must be in YYYY-MM-DD format"
)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// strongPassword requires minPasswordLen characters with at least one upper
// case letter, one lower case letter and one digit.
func strongPassword(pw string) bool {
	if len(pw) < minPasswordLen {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// validateRegistration checks credentials plus any biometrics sent at signup.
func validateRegistration(req registerRequest) nutrition.FieldErrors {
	errs := nutrition.ValidateBiometrics(req.update())
	if !validEmail(req.Email) {
		errs["email"] = msgEmail
	}
	if !strongPassword(req.Password) {
		errs["password"] = msgPassword
	}
	return errs
}

// validateLog checks the fields present in req. With requireAll set, every
// field must be present, as for a new entry.
func validateLog(req logRequest, requireAll bool) nutrition.FieldErrors {
	errs := nutrition.FieldErrors{}

	if req.Date == nil {
		if requireAll {
			errs["date"] = msgDate
		}
	} else if _, err := time.Parse(dateLayout, *req.Date); err != nil {
		errs["date"] = msgDate
	}

	if req.WeightLbs == nil {
		if requireAll {
			errs["weight"] = msgWeight
		}
	} else if !nutrition.ValidWeight(*req.WeightLbs) {
		errs["weight"] = msgWeight
	}

	if requireAll && (req.Calories == nil || req.ProteinG == nil || req.CarbsG == nil || req.FatG == nil) {
		errs["nutrition"] = msgNutrition
	} else if !inRange(req.Calories, maxLogCalories) || !inRange(req.ProteinG, maxLogProteinG) ||
		!inRange(req.CarbsG, maxLogCarbsG) || !inRange(req.FatG, maxLogFatG) {
		errs["nutrition"] = msgNutrition
	}

	return errs
}

// inRange treats a missing value as valid.
func inRange(v *float64, max float64) bool {
	return v == nil || (*v >= 0 && *v <= max)
}
