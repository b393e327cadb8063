package nutrition

import "fmt"

// BasicAdvice is rule-based guidance derived from a profile alone.
type BasicAdvice struct {
	Calories       string `json:"calories"`
	Macronutrients string `json:"macronutrients"`
	Hydration      string `json:"hydration"`
	General        string `json:"general"`
}

var generalAdvice = map[Goal]string{
	LoseWeight:       "Focus on high-protein, nutrient-dense foods. Consider meal timing around workouts.",
	GainMuscle:       "Prioritize protein intake and consider pre/post workout nutrition.",
	Maintain:         "Maintain a balanced diet with regular meal timing.",
	ImproveEndurance: "Focus on adequate carb intake for energy and proper hydration.",
}

// Advise summarises p as short sentences. General advice is empty for an
// unrecognised goal.
func Advise(p Profile, goal string) BasicAdvice {
	a := BasicAdvice{
		Calories:       fmt.Sprintf("Your target daily calorie intake is %d calories.", p.TargetCalories),
		Macronutrients: fmt.Sprintf("Aim for %dg protein, %dg carbs, and %dg fat daily.", p.ProteinGrams, p.CarbsGrams, p.FatGrams),
		Hydration:      fmt.Sprintf("Drink at least %doz of water daily.", p.WaterOz),
	}
	if g, ok := ParseGoal(goal); ok {
		a.General = generalAdvice[g]
	}
	return a
}
