package main

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lg/nutrichat-api/coach"
)

// validMealTypes are the meals the coach can size a recipe for.
var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

const maxProgressDays = 365

// postAdvice returns a personalised meal plan with nutrition and lifestyle tips.
// POST /api/coach/advice. Falls back to static text when the model is
// unavailable; "fallback" in the response says so.
func (h *Handler) postAdvice(c *gin.Context) {
	p, ok := h.loadNutritionProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.coach.PersonalizedAdvice(c, p, p.Goal))
}

// postMealSuggestion suggests one recipe sized to a fifth of the daily targets.
// POST /api/coach/meal. Body: { "meal_type": "lunch", "preferences": {...} }.
func (h *Handler) postMealSuggestion(c *gin.Context) {
	var body struct {
		MealType    string            `json:"meal_type"`
		Preferences map[string]string `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	mealType := strings.ToLower(strings.TrimSpace(body.MealType))
	if !validMealTypes[mealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
		return
	}

	p, ok := h.loadNutritionProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.coach.SuggestMeal(c, p, mealType, body.Preferences))
}

// getTip returns one short actionable tip. GET /api/coach/tip.
func (h *Handler) getTip(c *gin.Context) {
	p, ok := h.loadNutritionProfile(c)
	if !ok {
		return
	}
	tip, fallback := h.coach.QuickTip(c, p, p.Goal)
	c.JSON(http.StatusOK, gin.H{"tip": tip, "fallback": fallback})
}

// postProgress analyses recent logs against the user's targets.
// POST /api/coach/progress. Body (optional): { "days": 30 }.
func (h *Handler) postProgress(c *gin.Context) {
	var body struct {
		Days int `json:"days"`
	}
	// An empty body means the default window.
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Days == 0 {
		body.Days = defaultRangeDays
	}
	if body.Days < 1 || body.Days > maxProgressDays {
		apiError(c, http.StatusBadRequest, "days must be between 1 and 365")
		return
	}

	p, ok := h.loadNutritionProfile(c)
	if !ok {
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(body.Days - 1))
	logs, err := h.logsBetween(c, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch logs")
		return
	}

	c.JSON(http.StatusOK, coach.AnalyzeProgress(p, progressEntries(logs), p.Goal))
}

func progressEntries(logs []dailyLog) []coach.LogEntry {
	entries := make([]coach.LogEntry, len(logs))
	for i, l := range logs {
		entries[i] = coach.LogEntry{
			Date:      l.Date.Format(dateLayout),
			WeightLbs: l.WeightLbs,
			Calories:  l.Calories,
			ProteinG:  l.ProteinG,
		}
	}
	return entries
}
