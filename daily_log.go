package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/nutrichat-api/nutrition"
)

// defaultRangeDays is the window used when start/end are omitted.
const defaultRangeDays = 30

// Chart metrics accepted by GET /api/logs/chart.
const (
	metricWeight   = "weight"
	metricCalories = "calories"
	metricMacros   = "macros"
)

var validChartMetrics = map[string]bool{
	metricWeight:   true,
	metricCalories: true,
	metricMacros:   true,
}

// getLogs returns the user's daily logs within [start, end], oldest first.
// GET /api/logs?start=YYYY-MM-DD&end=YYYY-MM-DD. Defaults to the last 30 days.
func (h *Handler) getLogs(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	logs, err := h.logsBetween(c, start, end)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// upsertLog creates or replaces the log for the given date.
// POST /api/logs. The UNIQUE(user_id, date) constraint makes a second post for
// the same date update in place.
func (h *Handler) upsertLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body logRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validateLog(body, true); len(errs) > 0 {
		fieldErrors(c, errs)
		return
	}

	entry, err := queryOne[dailyLog](h, c,
		`INSERT INTO daily_logs (user_id, date, weight_lbs, calories, protein_g, carbs_g, fat_g)
		 VALUES (@userID, @date, @weight, @calories, @protein, @carbs, @fat)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			weight_lbs = EXCLUDED.weight_lbs,
			calories   = EXCLUDED.calories,
			protein_g  = EXCLUDED.protein_g,
			carbs_g    = EXCLUDED.carbs_g,
			fat_g      = EXCLUDED.fat_g,
			updated_at = now()
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":   userID,
			"date":     *body.Date,
			"weight":   *body.WeightLbs,
			"calories": *body.Calories,
			"protein":  *body.ProteinG,
			"carbs":    *body.CarbsG,
			"fat":      *body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save log")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// updateLog partially updates an existing log.
// PUT /api/logs/:id. Omitted fields keep their current values.
func (h *Handler) updateLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, ok := logID(c)
	if !ok {
		return
	}

	var body logRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validateLog(body, false); len(errs) > 0 {
		fieldErrors(c, errs)
		return
	}

	entry, err := queryOne[dailyLog](h, c,
		`UPDATE daily_logs SET
			date       = COALESCE(@date::date, date),
			weight_lbs = COALESCE(@weight, weight_lbs),
			calories   = COALESCE(@calories, calories),
			protein_g  = COALESCE(@protein, protein_g),
			carbs_g    = COALESCE(@carbs, carbs_g),
			fat_g      = COALESCE(@fat, fat_g),
			updated_at = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id":       id,
			"userID":   userID,
			"date":     body.Date,
			"weight":   body.WeightLbs,
			"calories": body.Calories,
			"protein":  body.ProteinG,
			"carbs":    body.CarbsG,
			"fat":      body.FatG,
		})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			apiError(c, http.StatusNotFound, "log not found")
		case isUniqueViolation(err):
			apiError(c, http.StatusConflict, "a log already exists for that date")
		default:
			apiError(c, http.StatusInternalServerError, "failed to update log")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// deleteLog removes a log by ID. DELETE /api/logs/:id. 204 on success.
func (h *Handler) deleteLog(c *gin.Context) {
	id, ok := logID(c)
	if !ok {
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM daily_logs WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": c.GetInt("user_id")})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete log")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "log not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// logID parses the :id path parameter, writing a 400 when it is not a
// positive integer.
func logID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		apiError(c, http.StatusBadRequest, "invalid log id")
		return 0, false
	}
	return id, true
}

// getLogSummary reports the latest log and how it moved since the one before.
// GET /api/logs/summary.
func (h *Handler) getLogSummary(c *gin.Context) {
	userID := c.GetInt("user_id")

	recent, err := queryMany[dailyLog](h, c,
		`SELECT * FROM daily_logs WHERE user_id = @userID ORDER BY date DESC LIMIT 2`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch logs")
		return
	}

	var count int
	if err := h.db.QueryRow(c, "SELECT count(*) FROM daily_logs WHERE user_id = $1", userID).Scan(&count); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to count logs")
		return
	}

	c.JSON(http.StatusOK, summarizeLogs(recent, count, h.targetCalories(c)))
}

// getLogChart returns series data for one metric over a date range.
// GET /api/logs/chart?start&end&metric=weight|calories|macros.
func (h *Handler) getLogChart(c *gin.Context) {
	metric := c.DefaultQuery("metric", metricWeight)
	if !validChartMetrics[metric] {
		apiError(c, http.StatusBadRequest, "metric must be one of: weight, calories, macros")
		return
	}
	start, end, ok := dateRange(c)
	if !ok {
		return
	}

	logs, err := h.logsBetween(c, start, end)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch logs")
		return
	}

	chart := buildChart(logs, metric)
	chart.Start, chart.End = start, end
	if metric == metricCalories {
		chart.Target = h.targetCalories(c)
	}
	c.JSON(http.StatusOK, chart)
}

/* ─── Helpers ────────────────────────────────────────────────────────── */

func (h *Handler) logsBetween(c *gin.Context, start, end string) ([]dailyLog, error) {
	logs, err := queryMany[dailyLog](h, c,
		`SELECT * FROM daily_logs
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": c.GetInt("user_id"), "start": start, "end": end})
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []dailyLog{}
	}
	return logs, nil
}

// targetCalories is the user's computed target, or nil while the profile is
// incomplete or invalid.
func (h *Handler) targetCalories(c *gin.Context) *int {
	u, err := h.currentUser(c)
	if err != nil {
		return nil
	}
	b, missing := u.biometrics()
	if len(missing) > 0 {
		return nil
	}
	p, err := nutrition.Calculate(b)
	if err != nil {
		return nil
	}
	return &p.TargetCalories
}

// dateRange reads start and end query params, defaulting to the 30 days
// ending today. On invalid input it writes a 400 and returns ok=false.
func dateRange(c *gin.Context) (start, end string, ok bool) {
	today := time.Now()
	end = c.DefaultQuery("end", today.Format(dateLayout))
	endTime, err := time.Parse(dateLayout, end)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return "", "", false
	}
	start = c.DefaultQuery("start", endTime.AddDate(0, 0, -(defaultRangeDays-1)).Format(dateLayout))
	if _, err := time.Parse(dateLayout, start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return "", "", false
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return "", "", false
	}
	return start, end, true
}

// summarizeLogs builds the summary from up to two logs, newest first.
func summarizeLogs(recent []dailyLog, daysLogged int, target *int) logSummary {
	s := logSummary{DaysLogged: daysLogged, TargetCalories: target}
	if len(recent) == 0 {
		return s
	}

	latest := recent[0]
	s.Latest = &latest
	if target != nil {
		diff := latest.Calories - float64(*target)
		s.CaloriesVsTarget = &diff
	}
	if len(recent) > 1 {
		prev := recent[1]
		weight := latest.WeightLbs - prev.WeightLbs
		calories := latest.Calories - prev.Calories
		protein := latest.ProteinG - prev.ProteinG
		s.WeightChange, s.CaloriesChange, s.ProteinChange = &weight, &calories, &protein
	}
	return s
}

// buildChart turns logs (oldest first) into the series for metric.
func buildChart(logs []dailyLog, metric string) chartData {
	series := func(name string, value func(dailyLog) float64) chartSeries {
		points := make([]chartPoint, len(logs))
		for i, l := range logs {
			points[i] = chartPoint{Date: l.Date, Value: value(l)}
		}
		return chartSeries{Name: name, Points: points}
	}

	chart := chartData{Metric: metric}
	switch metric {
	case metricWeight:
		chart.Series = []chartSeries{
			series("weight_lbs", func(l dailyLog) float64 { return l.WeightLbs }),
		}
	case metricCalories:
		chart.Series = []chartSeries{
			series("calories", func(l dailyLog) float64 { return l.Calories }),
		}
	case metricMacros:
		chart.Series = []chartSeries{
			series("protein_g", func(l dailyLog) float64 { return l.ProteinG }),
			series("carbs_g", func(l dailyLog) float64 { return l.CarbsG }),
			series("fat_g", func(l dailyLog) float64 { return l.FatG }),
		}
	}
	return chart
}
