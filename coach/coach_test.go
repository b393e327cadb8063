package coach

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lg/nutrichat-api/internal/config"
	"lg/nutrichat-api/nutrition"
)

// testProfile is the 180 lb / 70 in / 30 y male, moderate, maintain profile.
func testProfile(t *testing.T) nutrition.Profile {
	t.Helper()
	p, err := nutrition.Calculate(nutrition.Biometrics{
		WeightLbs: 180, HeightInches: 70, Age: 30,
		Sex: "male", ActivityLevel: "moderate", Goal: "maintain",
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	return p
}

// setupMockLLM starts a chat-completions server and returns a Coach wired to
// it plus a setter for the next response. The last request body is captured.
func setupMockLLM(t *testing.T) (*Coach, func(int, interface{}), *map[string]interface{}) {
	t.Helper()
	var mockStatus int
	var mockBody interface{}
	lastReq := map[string]interface{}{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewDecoder(r.Body).Decode(&lastReq)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(mockStatus)
		_ = json.NewEncoder(w).Encode(mockBody)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(config.AIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
	setMock := func(status int, body interface{}) {
		mockStatus = status
		mockBody = body
	}
	return New(client, nil), setMock, &lastReq
}

// chatResponseWith wraps content in the chat-completions response shape.
func chatResponseWith(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
}

type failingClient struct{}

func (failingClient) Complete(context.Context, CompletionRequest) (string, error) {
	return "", errors.New("service unavailable")
}

/* ─── Personalised advice ────────────────────────────────────────────── */

func TestPersonalizedAdvice_Sections(t *testing.T) {
	c, setMock, lastReq := setupMockLLM(t)
	reply := `Here is your plan.

## Meal Plan
Breakfast: oats (700 calories)
Total: 2,764 calories

## Nutrition Tips
- Eat protein with every meal
- Good nutrition starts with planning your groceries for the whole week ahead

## Lifestyle Tips
- Sleep 8 hours`
	setMock(http.StatusOK, chatResponseWith(reply))

	a := c.PersonalizedAdvice(context.Background(), testProfile(t), "maintenance")

	if a.Fallback {
		t.Fatal("expected live advice, got fallback")
	}
	if !strings.Contains(a.MealPlan, "Total: 2,764 calories") {
		t.Errorf("MealPlan = %q", a.MealPlan)
	}
	if strings.Contains(a.MealPlan, "Here is your plan") {
		t.Error("preamble before the first heading should be dropped")
	}
	// A long sentence mentioning nutrition is content, not a heading.
	if !strings.Contains(a.NutritionTips, "Good nutrition starts with planning") {
		t.Errorf("NutritionTips = %q", a.NutritionTips)
	}
	if a.LifestyleTips != "- Sleep 8 hours\n" {
		t.Errorf("LifestyleTips = %q", a.LifestyleTips)
	}

	if (*lastReq)["model"] != "test-model" {
		t.Errorf("model = %v", (*lastReq)["model"])
	}
	if _, ok := (*lastReq)["response_format"]; ok {
		t.Error("advice request should not ask for JSON output")
	}
}

// TestPersonalizedAdvice_FillsMissingSections verifies that empty sections and
// a meal plan that ignores the calorie target are replaced from the profile.
func TestPersonalizedAdvice_FillsMissingSections(t *testing.T) {
	c, setMock, _ := setupMockLLM(t)
	setMock(http.StatusOK, chatResponseWith("MEAL PLAN\nEat 1500 calories of salad\n"))

	a := c.PersonalizedAdvice(context.Background(), testProfile(t), "maintenance")

	if a.Fallback {
		t.Fatal("partial replies are not a full fallback")
	}
	// 2764 split 25/30/30/15 → 691, 829, 829, 415.
	for _, want := range []string{"Breakfast (691 calories)", "Lunch (829 calories)", "Snacks (415 calories)", "Total: 2764 calories"} {
		if !strings.Contains(a.MealPlan, want) {
			t.Errorf("MealPlan missing %q:\n%s", want, a.MealPlan)
		}
	}
	if !strings.Contains(a.NutritionTips, "Get 147g of protein") {
		t.Errorf("NutritionTips = %q", a.NutritionTips)
	}
	if !strings.Contains(a.LifestyleTips, "108oz of water") {
		t.Errorf("LifestyleTips = %q", a.LifestyleTips)
	}
}

func TestPersonalizedAdvice_ServerError(t *testing.T) {
	c, setMock, _ := setupMockLLM(t)
	setMock(http.StatusInternalServerError, map[string]string{"error": "boom"})

	a := c.PersonalizedAdvice(context.Background(), testProfile(t), "maintenance")

	if !a.Fallback {
		t.Fatal("expected fallback advice on a 500")
	}
	want := "Focus on eating exactly 2764 calories daily for maintenance. Adjust portions based on your weight of 180.0 lbs."
	if a.MealPlan != want {
		t.Errorf("MealPlan = %q, want %q", a.MealPlan, want)
	}
}

func TestPersonalizedAdvice_NoAPIKey(t *testing.T) {
	c := New(NewClient(config.AIConfig{BaseURL: "http://127.0.0.1:0", Model: "m", Timeout: time.Second}), nil)
	if a := c.PersonalizedAdvice(context.Background(), testProfile(t), "maintenance"); !a.Fallback {
		t.Fatal("expected fallback when no API key is configured")
	}
}

/* ─── Meal suggestion ────────────────────────────────────────────────── */

func TestSuggestMeal_Success(t *testing.T) {
	c, setMock, lastReq := setupMockLLM(t)
	meal := "```json\n" + `{"name":"Chicken Rice Bowl","calories":550,"protein":30,"carbs":67,"fat":18,` +
		`"ingredients":["chicken","rice"],"instructions":"Cook.","prep_time":"20 minutes","difficulty":"easy"}` + "\n```"
	setMock(http.StatusOK, chatResponseWith(meal))

	got := c.SuggestMeal(context.Background(), testProfile(t), "lunch", map[string]string{"diet": "no pork"})

	if got.Fallback {
		t.Fatal("expected a live suggestion")
	}
	if got.Name != "Chicken Rice Bowl" || got.Calories != 550 || len(got.Ingredients) != 2 {
		t.Errorf("unexpected suggestion: %+v", got)
	}

	rf, _ := (*lastReq)["response_format"].(map[string]interface{})
	if rf["type"] != "json_object" {
		t.Errorf("response_format = %v", (*lastReq)["response_format"])
	}
	msgs, _ := (*lastReq)["messages"].([]interface{})
	if len(msgs) == 0 {
		t.Fatal("no messages sent")
	}
	system, _ := msgs[0].(map[string]interface{})["content"].(string)
	if !strings.Contains(system, "- diet: no pork") {
		t.Errorf("preferences missing from prompt:\n%s", system)
	}
	if !strings.Contains(system, "Calories: 553") { // 2764 / 5 = 552.8
		t.Errorf("per-meal calories missing from prompt:\n%s", system)
	}
}

func TestSuggestMeal_Fallbacks(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not json", "just eat something"},
		{"missing name", `{"calories":500}`},
		{"zero calories", `{"name":"Air","calories":0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, setMock, _ := setupMockLLM(t)
			setMock(http.StatusOK, chatResponseWith(tc.content))

			got := c.SuggestMeal(context.Background(), testProfile(t), "dinner", nil)
			if !got.Fallback || got.Name != "Simple Balanced Meal" {
				t.Fatalf("expected fallback meal, got %+v", got)
			}
			if got.Calories != 552 {
				t.Errorf("fallback calories = %d, want 552", got.Calories)
			}
		})
	}
}

/* ─── Quick tip ──────────────────────────────────────────────────────── */

func TestQuickTip(t *testing.T) {
	c, setMock, lastReq := setupMockLLM(t)
	setMock(http.StatusOK, chatResponseWith("  Add Greek yogurt to breakfast.  "))

	tip, fallback := c.QuickTip(context.Background(), testProfile(t), "maintenance")
	if fallback || tip != "Add Greek yogurt to breakfast." {
		t.Errorf("QuickTip = %q (fallback=%v)", tip, fallback)
	}
	if (*lastReq)["max_tokens"] != float64(100) {
		t.Errorf("max_tokens = %v, want 100", (*lastReq)["max_tokens"])
	}
}

func TestQuickTip_Fallback(t *testing.T) {
	c := New(failingClient{}, nil)
	tip, fallback := c.QuickTip(context.Background(), testProfile(t), "maintenance")
	if !fallback || !strings.Contains(tip, "147g") {
		t.Errorf("QuickTip = %q (fallback=%v)", tip, fallback)
	}
}

/* ─── Helpers ────────────────────────────────────────────────────────── */

func TestHeadingOf(t *testing.T) {
	cases := map[string]section{
		"MEAL PLAN":               sectionMealPlan,
		"1. Meal Plan":            sectionMealPlan,
		"**Nutrition Tips:**":     sectionNutrition,
		"### Lifestyle Tips":      sectionLifestyle,
		"Breakfast: eggs":         sectionNone,
		"Nutrition labels matter": sectionNutrition,
		"Nutrition labels matter more than most people think when shopping": sectionNone,
	}
	for line, want := range cases {
		if got := headingOf(line); got != want {
			t.Errorf("headingOf(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestMentionsCalories(t *testing.T) {
	if !mentionsCalories("Total 2764 kcal", 2764) || !mentionsCalories("Total 2,764 kcal", 2764) {
		t.Error("expected plain and comma-separated totals to match")
	}
	if mentionsCalories("Total 2500 kcal", 2764) {
		t.Error("unexpected match")
	}
	if !mentionsCalories("Total: 950", 950) {
		t.Error("expected sub-1000 total to match")
	}
}
