package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"lg/nutrichat-api/nutrition"
)

const dateLayout = "2006-01-02"

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+dateLayout+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate lets pgx scan date columns into DateOnly. NULL zeroes the value.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. Biometric columns stay NULL until the user
// fills in their profile.
type user struct {
	ID            int        `json:"id"             db:"id"`
	Email         string     `json:"email"          db:"email"`
	Password      string     `json:"-"              db:"password"`
	Age           *int       `json:"age"            db:"age"`
	HeightInches  *float64   `json:"height_inches"  db:"height_inches"`
	WeightLbs     *float64   `json:"weight_lbs"     db:"weight_lbs"`
	Sex           *string    `json:"sex"            db:"sex"`
	ActivityLevel *string    `json:"activity_level" db:"activity_level"`
	Goal          *string    `json:"goal"           db:"goal"`
	CreatedAt     *time.Time `json:"created_at"     db:"created_at"`
}

// biometrics returns the stored inputs for the calculator along with the
// names of any that are still missing.
func (u user) biometrics() (nutrition.Biometrics, []string) {
	var missing []string
	check := func(name string, isNil bool) {
		if isNil {
			missing = append(missing, name)
		}
	}
	check("age", u.Age == nil)
	check("height_inches", u.HeightInches == nil)
	check("weight_lbs", u.WeightLbs == nil)
	check("sex", u.Sex == nil)
	check("activity_level", u.ActivityLevel == nil)
	check("goal", u.Goal == nil)
	if len(missing) > 0 {
		return nutrition.Biometrics{}, missing
	}

	return nutrition.Biometrics{
		WeightLbs:     *u.WeightLbs,
		HeightInches:  *u.HeightInches,
		Age:           *u.Age,
		Sex:           *u.Sex,
		ActivityLevel: *u.ActivityLevel,
		Goal:          *u.Goal,
	}, nil
}

// dailyLog maps to daily_logs. One row per user per date.
type dailyLog struct {
	ID        int        `json:"id"         db:"id"`
	UserID    int        `json:"user_id"    db:"user_id"`
	Date      DateOnly   `json:"date"       db:"date"`
	WeightLbs float64    `json:"weight_lbs" db:"weight_lbs"`
	Calories  float64    `json:"calories"   db:"calories"`
	ProteinG  float64    `json:"protein_g"  db:"protein_g"`
	CarbsG    float64    `json:"carbs_g"    db:"carbs_g"`
	FatG      float64    `json:"fat_g"      db:"fat_g"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// logSummary is the response shape for GET /api/logs/summary. Changes are
// nil until at least two days have been logged.
type logSummary struct {
	DaysLogged       int       `json:"days_logged"`
	Latest           *dailyLog `json:"latest"`
	WeightChange     *float64  `json:"weight_change"`
	CaloriesChange   *float64  `json:"calories_change"`
	ProteinChange    *float64  `json:"protein_change"`
	TargetCalories   *int      `json:"target_calories,omitempty"`
	CaloriesVsTarget *float64  `json:"calories_vs_target,omitempty"`
}

// chartPoint is one dated value in a chart series.
type chartPoint struct {
	Date  DateOnly `json:"date"`
	Value float64  `json:"value"`
}

type chartSeries struct {
	Name   string       `json:"name"`
	Points []chartPoint `json:"points"`
}

// chartData is the response shape for GET /api/logs/chart. Target is the
// horizontal reference line (target calories) when one applies.
type chartData struct {
	Metric string        `json:"metric"`
	Start  string        `json:"start"`
	End    string        `json:"end"`
	Series []chartSeries `json:"series"`
	Target *int          `json:"target,omitempty"`
}

/* ─── Requests ───────────────────────────────────────────────────────── */

// biometricsRequest holds the optional profile fields shared by register and
// PATCH /api/profile. Only non-nil fields are validated and written.
type biometricsRequest struct {
	Age           *int     `json:"age"`
	HeightInches  *float64 `json:"height_inches"`
	WeightLbs     *float64 `json:"weight_lbs"`
	Sex           *string  `json:"sex"`
	ActivityLevel *string  `json:"activity_level"`
	Goal          *string  `json:"goal"`
}

func (b biometricsRequest) update() nutrition.BiometricsUpdate {
	return nutrition.BiometricsUpdate{
		Age:           b.Age,
		HeightInches:  b.HeightInches,
		WeightLbs:     b.WeightLbs,
		Sex:           b.Sex,
		ActivityLevel: b.ActivityLevel,
		Goal:          b.Goal,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	biometricsRequest
}

// logRequest is the body for POST and PUT /api/logs. POST requires every
// field; PUT writes only the ones provided.
type logRequest struct {
	Date      *string  `json:"date"`
	WeightLbs *float64 `json:"weight_lbs"`
	Calories  *float64 `json:"calories"`
	ProteinG  *float64 `json:"protein_g"`
	CarbsG    *float64 `json:"carbs_g"`
	FatG      *float64 `json:"fat_g"`
}
