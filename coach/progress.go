package coach

import (
	"fmt"
	"math"

	"lg/nutrichat-api/nutrition"
)

// LogEntry is one day of logged intake and body weight, oldest first.
type LogEntry struct {
	Date      string
	WeightLbs float64
	Calories  float64
	ProteinG  float64
}

// ProgressAnalysis summarises logged days against the profile's targets.
type ProgressAnalysis struct {
	Summary         string  `json:"summary"`
	Recommendations string  `json:"recommendations"`
	DaysLogged      int     `json:"days_logged"`
	AvgCalories     float64 `json:"avg_calories"`
	AvgProteinG     float64 `json:"avg_protein_g"`
	WeightChangeLbs float64 `json:"weight_change_lbs"`
}

// stableBandLbs is how far weight may drift and still count as maintained.
const stableBandLbs = 1.0

// AnalyzeProgress is computed locally; it never calls the remote service.
// logs must be ordered by date ascending.
func AnalyzeProgress(p nutrition.Profile, logs []LogEntry, goal string) ProgressAnalysis {
	if len(logs) == 0 {
		return ProgressAnalysis{
			Summary:         "No logs available for analysis. Start logging your meals to get feedback.",
			Recommendations: "Begin tracking your daily nutrition to see your progress.",
		}
	}

	var totalCalories, totalProtein float64
	for _, l := range logs {
		totalCalories += l.Calories
		totalProtein += l.ProteinG
	}
	n := float64(len(logs))
	a := ProgressAnalysis{
		DaysLogged:      len(logs),
		AvgCalories:     totalCalories / n,
		AvgProteinG:     totalProtein / n,
		WeightChangeLbs: logs[len(logs)-1].WeightLbs - logs[0].WeightLbs,
	}

	a.Summary = fmt.Sprintf(`Progress Summary:
• Average daily calories: %.0f calories
• Average protein intake: %.0fg
• Weight change: %+.1f lbs
• Target calories: %d calories`, a.AvgCalories, a.AvgProteinG, a.WeightChangeLbs, p.TargetCalories)

	a.Recommendations = fmt.Sprintf(`Recommendations:
• %s calorie intake to reach %d calories
• %s protein intake to reach %dg
• %s current approach based on weight change`,
		calorieVerb(a.AvgCalories, p.TargetCalories), p.TargetCalories,
		increaseOrMaintain(a.AvgProteinG, float64(p.ProteinGrams)), p.ProteinGrams,
		continueOrAdjust(a.WeightChangeLbs, goal))

	return a
}

func calorieVerb(avg float64, target int) string {
	switch {
	case math.Round(avg) < float64(target):
		return "Increase"
	case math.Round(avg) > float64(target):
		return "Reduce"
	}
	return "Maintain"
}

func increaseOrMaintain(avg, target float64) string {
	if avg < target {
		return "Increase"
	}
	return "Maintain"
}

// continueOrAdjust judges the weight trend against the direction the goal wants.
func continueOrAdjust(change float64, goal string) string {
	g, _ := nutrition.ParseGoal(goal)
	var onTrack bool
	switch g {
	case nutrition.LoseWeight:
		onTrack = change < 0
	case nutrition.GainMuscle:
		onTrack = change > 0
	default:
		onTrack = math.Abs(change) <= stableBandLbs
	}
	if onTrack {
		return "Continue"
	}
	return "Adjust"
}
