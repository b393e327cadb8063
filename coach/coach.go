// Package coach produces dietary advice for a computed nutrition profile.
//
// Text generation is delegated to a remote chat-completions service that may
// be slow, misconfigured or down. Every method that calls it degrades to
// profile-derived fallback text instead of returning an error, and reports
// whether it did so.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"lg/nutrichat-api/nutrition"
)

// Advice is the three-section personalised plan.
type Advice struct {
	MealPlan      string `json:"meal_plan"`
	NutritionTips string `json:"nutrition_tips"`
	LifestyleTips string `json:"lifestyle_tips"`
	// Fallback is true when the remote service failed and the whole response
	// is static text.
	Fallback bool `json:"fallback"`
}

// MealSuggestion is a single recipe sized to one fifth of the daily targets.
type MealSuggestion struct {
	Name         string   `json:"name"`
	Calories     int      `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	PrepTime     string   `json:"prep_time"`
	Difficulty   string   `json:"difficulty"`
	Fallback     bool     `json:"fallback"`
}

// Coach wraps a Client with prompts, response parsing and fallbacks.
type Coach struct {
	client Client
	logger *zap.Logger
}

// New returns a Coach. A nil logger is replaced with a no-op logger.
func New(client Client, logger *zap.Logger) *Coach {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{client: client, logger: logger}
}

/* ─── Personalised advice ────────────────────────────────────────────── */

// PersonalizedAdvice asks for a meal plan plus nutrition and lifestyle tips.
// Sections missing from the reply are filled from the profile; a meal plan
// that never mentions the calorie target is replaced the same way.
func (c *Coach) PersonalizedAdvice(ctx context.Context, p nutrition.Profile, goal string) Advice {
	messages := []Message{
		{Role: "system", Content: adviceSystemPrompt(p, goal)},
		{Role: "user", Content: fmt.Sprintf(adviceUserPromptTemplate,
			p.Age, p.Sex, p.WeightLbs, p.ActivityLevel, goal,
			p.TargetCalories, p.TargetCalories, p.ProteinGrams)},
	}

	content, err := c.client.Complete(ctx, CompletionRequest{
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		c.logger.Warn("advice request failed, serving fallback", zap.Error(err))
		return fallbackAdvice(p, goal)
	}

	advice := splitSections(content)
	if strings.TrimSpace(advice.MealPlan) != "" && !mentionsCalories(advice.MealPlan, p.TargetCalories) {
		c.logger.Warn("meal plan does not match calorie target, using generated plan",
			zap.Int("target_calories", p.TargetCalories))
		advice.MealPlan = ""
	}
	if strings.TrimSpace(advice.MealPlan) == "" {
		advice.MealPlan = fallbackMealPlan(p)
	}
	if strings.TrimSpace(advice.NutritionTips) == "" {
		advice.NutritionTips = fallbackNutritionTips(p)
	}
	if strings.TrimSpace(advice.LifestyleTips) == "" {
		advice.LifestyleTips = fallbackLifestyleTips(p)
	}
	return advice
}

func adviceSystemPrompt(p nutrition.Profile, goal string) string {
	return fmt.Sprintf(adviceSystemPromptTemplate,
		p.WeightLbs, p.HeightInches, p.Age, p.Sex, p.ActivityLevel, goal,
		p.TargetCalories, p.ProteinGrams, p.CarbsGrams, p.FatGrams, p.WaterOz,
		p.TargetCalories, p.TargetCalories, goal, p.Age, p.ActivityLevel, p.WeightLbs)
}

type section int

const (
	sectionNone section = iota
	sectionMealPlan
	sectionNutrition
	sectionLifestyle
)

// maxHeadingLen keeps ordinary sentences that happen to mention "nutrition"
// from being read as a section heading.
const maxHeadingLen = 40

// splitSections assigns each non-empty line of text to the most recent heading.
// Lines before the first heading are dropped.
func splitSections(text string) Advice {
	var parts [4]strings.Builder
	current := sectionNone

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s := headingOf(line); s != sectionNone {
			current = s
			continue
		}
		if current != sectionNone {
			parts[current].WriteString(line)
			parts[current].WriteByte('\n')
		}
	}

	return Advice{
		MealPlan:      parts[sectionMealPlan].String(),
		NutritionTips: parts[sectionNutrition].String(),
		LifestyleTips: parts[sectionLifestyle].String(),
	}
}

func headingOf(line string) section {
	h := strings.ToUpper(strings.Trim(line, "#*_:-. 0123456789"))
	if len(h) > maxHeadingLen {
		return sectionNone
	}
	switch {
	case strings.HasPrefix(h, "MEAL PLAN"):
		return sectionMealPlan
	case strings.HasPrefix(h, "NUTRITION"):
		return sectionNutrition
	case strings.HasPrefix(h, "LIFESTYLE"):
		return sectionLifestyle
	}
	return sectionNone
}

// mentionsCalories reports whether text contains kcal written plainly or
// with a thousands separator.
func mentionsCalories(text string, kcal int) bool {
	plain := fmt.Sprintf("%d", kcal)
	if strings.Contains(text, plain) {
		return true
	}
	if kcal >= 1000 {
		return strings.Contains(text, fmt.Sprintf("%d,%03d", kcal/1000, kcal%1000))
	}
	return false
}

/* ─── Meal suggestion ────────────────────────────────────────────────── */

// mealsPerDay is three meals and two snacks.
const mealsPerDay = 5

// SuggestMeal asks for one recipe of mealType sized to a fifth of the daily
// targets. preferences are passed through to the prompt verbatim.
func (c *Coach) SuggestMeal(ctx context.Context, p nutrition.Profile, mealType string, preferences map[string]string) MealSuggestion {
	calories := float64(p.TargetCalories) / mealsPerDay
	protein := float64(p.ProteinGrams) / mealsPerDay
	carbs := float64(p.CarbsGrams) / mealsPerDay
	fat := float64(p.FatGrams) / mealsPerDay

	system := fmt.Sprintf(mealSystemPromptTemplate, mealType, calories, protein, carbs, fat)
	if len(preferences) > 0 {
		system += "\n\nConsider these preferences and restrictions:\n" + formatPreferences(preferences)
	}

	fallback := MealSuggestion{
		Name:         "Simple Balanced Meal",
		Calories:     int(calories),
		Protein:      protein,
		Carbs:        carbs,
		Fat:          fat,
		Ingredients:  []string{"Protein source", "Complex carbs", "Vegetables", "Healthy fats"},
		Instructions: "Combine ingredients in balanced portions.",
		PrepTime:     "15 minutes",
		Difficulty:   "easy",
		Fallback:     true,
	}

	content, err := c.client.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: fmt.Sprintf("Please suggest a %s recipe.", mealType)},
		},
		Temperature: 0.7,
		JSON:        true,
	})
	if err != nil {
		c.logger.Warn("meal suggestion request failed, serving fallback", zap.Error(err))
		return fallback
	}

	var meal MealSuggestion
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &meal); err != nil {
		c.logger.Warn("meal suggestion was not valid JSON, serving fallback", zap.Error(err))
		return fallback
	}
	if meal.Name == "" || meal.Calories <= 0 {
		c.logger.Warn("meal suggestion missing name or calories, serving fallback")
		return fallback
	}
	meal.Fallback = false
	return meal
}

func formatPreferences(prefs map[string]string) string {
	keys := make([]string, 0, len(prefs))
	for k := range prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, prefs[k])
	}
	return b.String()
}

// stripCodeFence removes a surrounding ``` or ```json fence some models add
// even when asked for bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

/* ─── Quick tip ──────────────────────────────────────────────────────── */

// QuickTip returns one short actionable tip and whether it is the fallback.
func (c *Coach) QuickTip(ctx context.Context, p nutrition.Profile, goal string) (string, bool) {
	content, err := c.client.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: fmt.Sprintf(tipSystemPromptTemplate,
				goal, p.TargetCalories, p.ProteinGrams, p.CarbsGrams, p.FatGrams)},
			{Role: "user", Content: tipUserPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   100,
	})
	if err == nil {
		if tip := strings.TrimSpace(content); tip != "" {
			return tip, false
		}
		err = errors.New("empty tip")
	}

	c.logger.Warn("tip request failed, serving fallback", zap.Error(err))
	return fmt.Sprintf("Include a protein source in every meal today to work toward your %dg protein target.", p.ProteinGrams), true
}

// mealShare splits target calories across the day for the generated plan.
func mealShare(target int, share float64) int {
	return int(math.RoundToEven(float64(target) * share))
}
