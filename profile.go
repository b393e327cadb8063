package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"lg/nutrichat-api/nutrition"
)

// getOptions lists the accepted activity levels and goals for the client's
// pickers. GET /api/options (public).
func (h *Handler) getOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"activity_levels": nutrition.ActivityLevels(),
		"goals":           nutrition.Goals(),
	})
}

// getProfile returns the authenticated user's account and biometrics.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	u, err := h.currentUser(c)
	if err != nil {
		apiError(c, http.StatusNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, u)
}

// patchProfile updates only the biometric fields present in the body.
// PATCH /api/profile.
func (h *Handler) patchProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body biometricsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := nutrition.ValidateBiometrics(body.update()); len(errs) > 0 {
		fieldErrors(c, errs)
		return
	}
	body = body.normalized()

	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID}
	set := func(column string, value any) {
		setClauses = append(setClauses, column+" = @"+column)
		args[column] = value
	}
	if body.Age != nil {
		set("age", *body.Age)
	}
	if body.HeightInches != nil {
		set("height_inches", *body.HeightInches)
	}
	if body.WeightLbs != nil {
		set("weight_lbs", *body.WeightLbs)
	}
	if body.Sex != nil {
		set("sex", *body.Sex)
	}
	if body.ActivityLevel != nil {
		set("activity_level", *body.ActivityLevel)
	}
	if body.Goal != nil {
		set("goal", *body.Goal)
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	query := "UPDATE users SET " + strings.Join(setClauses, ", ") +
		" WHERE id = @userID RETURNING *"
	u, err := queryOne[user](h, c, query, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, u)
}

// getNutritionProfile computes daily targets from the stored biometrics.
// GET /api/nutrition-profile. Responds 422 when biometrics are incomplete or
// rejected by the calculator.
func (h *Handler) getNutritionProfile(c *gin.Context) {
	p, ok := h.loadNutritionProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile": p,
		"advice":  nutrition.Advise(p, p.Goal),
	})
}

/* ─── Helpers ────────────────────────────────────────────────────────── */

func (h *Handler) currentUser(c *gin.Context) (user, error) {
	return queryOne[user](h, c,
		"SELECT * FROM users WHERE id = @userID",
		pgx.NamedArgs{"userID": c.GetInt("user_id")})
}

// loadNutritionProfile computes the current user's profile. On failure it
// writes the error response and returns ok=false.
func (h *Handler) loadNutritionProfile(c *gin.Context) (nutrition.Profile, bool) {
	u, err := h.currentUser(c)
	if err != nil {
		apiError(c, http.StatusNotFound, "user not found")
		return nutrition.Profile{}, false
	}
	return h.computeProfile(c, u)
}

// computeProfile runs the calculator on u's biometrics and maps its errors
// onto 422 responses.
func (h *Handler) computeProfile(c *gin.Context, u user) (nutrition.Profile, bool) {
	b, missing := u.biometrics()
	if len(missing) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "profile incomplete",
			"missing": missing,
		})
		return nutrition.Profile{}, false
	}

	p, err := nutrition.Calculate(b)
	if err != nil {
		var ve *nutrition.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   ve.Error(),
				"field":   ve.Field,
				"allowed": ve.Allowed,
			})
		} else {
			apiError(c, http.StatusInternalServerError, "failed to compute nutrition profile")
		}
		return nutrition.Profile{}, false
	}
	if p.CarbsClamped {
		h.logger.Warn("protein and fat exceed calorie target, carbs clamped to zero",
			zap.Int("user_id", u.ID), zap.Int("target_calories", p.TargetCalories))
	}
	return p, true
}

// normalized lower-cases enumerated fields and stores goals under their
// public name.
func (b biometricsRequest) normalized() biometricsRequest {
	lower := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.ToLower(strings.TrimSpace(*s))
		return &v
	}
	b.Sex = lower(b.Sex)
	b.ActivityLevel = lower(b.ActivityLevel)
	if b.Goal != nil {
		if g, ok := nutrition.ParseGoal(*b.Goal); ok {
			name := g.PublicName()
			b.Goal = &name
		}
	}
	return b
}
