// Package nutrition converts body biometrics into daily energy, macronutrient
// and hydration targets.
//
// The step functions (BMR, TDEE, TargetCalories, Macronutrients, WaterNeeds)
// are deliberately permissive: an unrecognised activity level or goal falls
// back to a default coefficient instead of failing. Calculate is the only
// entry point that validates, and it is what callers should use.
package nutrition

import (
	"math"
	"strings"
)

const (
	lbsToKg  = 0.453592
	inToCm   = 2.54
	kcalPerG = 4 // protein and carbohydrate
	kcalFatG = 9

	minAge = 13
	maxAge = 120

	maxMeasurement = 1e5
)

// Biometrics are the stored user inputs a profile is derived from.
type Biometrics struct {
	WeightLbs     float64 `json:"weight_lbs" yaml:"weight_lbs"`
	HeightInches  float64 `json:"height_inches" yaml:"height_inches"`
	Age           int     `json:"age" yaml:"age"`
	Sex           string  `json:"sex" yaml:"sex"`
	ActivityLevel string  `json:"activity_level" yaml:"activity_level"`
	Goal          string  `json:"goal" yaml:"goal"`
}

// Profile is a computed set of daily targets. It is a value; nothing in this
// package mutates one after Calculate returns it.
type Profile struct {
	Biometrics `yaml:",inline"`

	BMR            int `json:"bmr" yaml:"bmr"`
	TDEE           int `json:"tdee" yaml:"tdee"`
	TargetCalories int `json:"target_calories" yaml:"target_calories"`
	ProteinGrams   int `json:"protein_grams" yaml:"protein_grams"`
	CarbsGrams     int `json:"carbs_grams" yaml:"carbs_grams"`
	FatGrams       int `json:"fat_grams" yaml:"fat_grams"`
	WaterOz        int `json:"water_oz" yaml:"water_oz"`

	// CarbsClamped is set when protein and fat alone exceed the calorie
	// target and CarbsGrams was raised from a negative value to zero.
	CarbsClamped bool `json:"carbs_clamped" yaml:"carbs_clamped"`
}

// MacroCalories returns the energy the macro split accounts for.
func (p Profile) MacroCalories() int {
	return p.ProteinGrams*kcalPerG + p.CarbsGrams*kcalPerG + p.FatGrams*kcalFatG
}

// BMR computes basal metabolic rate with the Mifflin-St Jeor equation.
// Any sex other than "male" (case-insensitive) uses the female constant.
func BMR(weightLbs, heightInches float64, age int, sex string) int {
	bmr := 10*weightLbs*lbsToKg + 6.25*heightInches*inToCm - 5*float64(age)
	if strings.EqualFold(strings.TrimSpace(sex), "male") {
		bmr += 5
	} else {
		bmr -= 161
	}
	return round(bmr)
}

// TDEE scales BMR by the activity multiplier. Unknown levels count as sedentary.
func TDEE(bmr int, activityLevel string) int {
	mult, ok := activityMultipliers[ActivityLevel(normalize(activityLevel))]
	if !ok {
		mult = defaultActivityMultiplier
	}
	return round(float64(bmr) * mult)
}

// TargetCalories applies the goal's surplus or deficit to TDEE. Unknown goals
// leave TDEE unchanged.
func TargetCalories(tdee int, goal string) int {
	adj := defaultGoalAdjustment
	if g, ok := ParseGoal(goal); ok {
		adj = goalAdjustments[g]
	}
	return round(float64(tdee) * adj)
}

// Macronutrients splits target calories into grams of protein, carbohydrate
// and fat. Protein is sized by body weight, fat by a share of calories, and
// carbohydrate takes the remainder after the rounded protein and fat. The
// carbohydrate figure is negative when protein and fat exceed the target.
func Macronutrients(targetCalories int, goal string, weightLbs float64) (protein, carbs, fat int) {
	perKg, share := defaultProteinPerKg, defaultFatShare
	if g, ok := ParseGoal(goal); ok {
		perKg, share = proteinPerKg[g], fatShares[g]
	}

	protein = round(weightLbs * lbsToKg * perKg)
	fat = round(float64(targetCalories) * share / kcalFatG)

	remaining := targetCalories - protein*kcalPerG - fat*kcalFatG
	carbs = round(float64(remaining) / kcalPerG)
	return protein, carbs, fat
}

// WaterNeeds returns daily water intake in fluid ounces.
func WaterNeeds(weightLbs float64, activityLevel string) int {
	mult, ok := waterMultipliers[ActivityLevel(normalize(activityLevel))]
	if !ok {
		mult = defaultWaterMultiplier
	}
	return round(weightLbs * mult)
}

// Calculate validates b and derives the full profile. The only error it
// returns is *ValidationError.
func Calculate(b Biometrics) (Profile, error) {
	if err := validateForProfile(b); err != nil {
		return Profile{}, err
	}

	p := Profile{Biometrics: b}
	p.BMR = BMR(b.WeightLbs, b.HeightInches, b.Age, b.Sex)
	p.TDEE = TDEE(p.BMR, b.ActivityLevel)
	p.TargetCalories = TargetCalories(p.TDEE, b.Goal)
	p.ProteinGrams, p.CarbsGrams, p.FatGrams = Macronutrients(p.TargetCalories, b.Goal, b.WeightLbs)
	if p.CarbsGrams < 0 {
		p.CarbsGrams = 0
		p.CarbsClamped = true
	}
	p.WaterOz = WaterNeeds(b.WeightLbs, b.ActivityLevel)
	return p, nil
}

func validateForProfile(b Biometrics) error {
	switch {
	case !measurable(b.WeightLbs):
		return invalid("weight_lbs", "must be a positive finite number")
	case !measurable(b.HeightInches):
		return invalid("height_inches", "must be a positive finite number")
	case b.Age < minAge || b.Age > maxAge:
		return invalid("age", "must be between 13 and 120")
	}

	switch normalize(b.Sex) {
	case "male", "female":
	default:
		return invalid("sex", "unsupported value", "male", "female")
	}
	if _, ok := ParseActivityLevel(b.ActivityLevel); !ok {
		return invalid("activity_level", "unsupported value", optionValues(activityOptions)...)
	}
	if _, ok := ParseGoal(b.Goal); !ok {
		return invalid("goal", "unsupported value", optionValues(goalOptions)...)
	}
	return nil
}

// measurable reports whether v is a positive finite body measurement small
// enough that every derived target fits in an int.
func measurable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && v <= maxMeasurement
}

// round rounds half to even.
func round(v float64) int {
	return int(math.RoundToEven(v))
}
