package nutrition

import "strings"

// ActivityLevel is one of the five activity buckets used for TDEE and water.
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very_active"
)

// Goal is the internal goal vocabulary the coefficient tables are keyed by.
type Goal string

const (
	LoseWeight       Goal = "lose_weight"
	Maintain         Goal = "maintain"
	GainMuscle       Goal = "gain_muscle"
	ImproveEndurance Goal = "improve_endurance"
)

// Option is a selectable value with a human-readable description.
type Option struct {
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

/* ─── Coefficient tables ─────────────────────────────────────────────── */

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

// waterMultipliers are ounces of water per pound of body weight.
var waterMultipliers = map[ActivityLevel]float64{
	Sedentary:  0.5,
	Light:      0.55,
	Moderate:   0.6,
	Active:     0.65,
	VeryActive: 0.7,
}

var goalAdjustments = map[Goal]float64{
	LoseWeight:       0.85,
	Maintain:         1.0,
	GainMuscle:       1.1,
	ImproveEndurance: 1.05,
}

// proteinPerKg is grams of protein per kilogram of body weight.
var proteinPerKg = map[Goal]float64{
	LoseWeight:       2.2,
	Maintain:         1.8,
	GainMuscle:       2.0,
	ImproveEndurance: 1.6,
}

// fatShares is the fraction of target calories allocated to fat.
var fatShares = map[Goal]float64{
	LoseWeight:       0.25,
	Maintain:         0.30,
	GainMuscle:       0.25,
	ImproveEndurance: 0.25,
}

const (
	defaultActivityMultiplier = 1.2
	defaultWaterMultiplier    = 0.5
	defaultGoalAdjustment     = 1.0
	defaultProteinPerKg       = 1.8
	defaultFatShare           = 0.30
)

/* ─── Vocabularies ───────────────────────────────────────────────────── */

// goalAliases maps the public goal names (what users pick and what is stored)
// onto the internal table keys. Internal names map to themselves so both
// spellings resolve identically.
var goalAliases = map[string]Goal{
	"weight_loss":    LoseWeight,
	"maintenance":    Maintain,
	"muscle_gain":    GainMuscle,
	"general_health": ImproveEndurance,

	string(LoseWeight):       LoseWeight,
	string(Maintain):         Maintain,
	string(GainMuscle):       GainMuscle,
	string(ImproveEndurance): ImproveEndurance,
}

var activityOptions = []Option{
	{Value: string(Sedentary), Description: "Little or no exercise"},
	{Value: string(Light), Description: "Light exercise 1-3 days/week"},
	{Value: string(Moderate), Description: "Moderate exercise 3-5 days/week"},
	{Value: string(Active), Description: "Hard exercise 6-7 days/week"},
	{Value: string(VeryActive), Description: "Very hard exercise & physical job or training twice per day"},
}

var goalOptions = []Option{
	{Value: "weight_loss", Description: "Lose weight"},
	{Value: "maintenance", Description: "Maintain weight"},
	{Value: "muscle_gain", Description: "Build muscle"},
	{Value: "general_health", Description: "Improve general health"},
}

// ActivityLevels returns the accepted activity levels in display order.
func ActivityLevels() []Option {
	return append([]Option(nil), activityOptions...)
}

// Goals returns the public goal vocabulary in display order.
func Goals() []Option {
	return append([]Option(nil), goalOptions...)
}

// ParseActivityLevel resolves s case-insensitively. ok is false for unknown levels.
func ParseActivityLevel(s string) (ActivityLevel, bool) {
	level := ActivityLevel(normalize(s))
	_, ok := activityMultipliers[level]
	return level, ok
}

// ParseGoal resolves either the public or the internal spelling of a goal.
func ParseGoal(s string) (Goal, bool) {
	g, ok := goalAliases[normalize(s)]
	return g, ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func optionValues(opts []Option) []string {
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

var publicGoalNames = map[Goal]string{
	LoseWeight:       "weight_loss",
	Maintain:         "maintenance",
	GainMuscle:       "muscle_gain",
	ImproveEndurance: "general_health",
}

// PublicName returns the name a goal is offered and stored under.
func (g Goal) PublicName() string {
	if name, ok := publicGoalNames[g]; ok {
		return name
	}
	return string(g)
}
