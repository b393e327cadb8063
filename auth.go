package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a login email isn't found so that
// response time doesn't reveal which emails are registered.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// register creates an account, optionally with biometrics, and opens a session.
// POST /api/register (public).
func (h *Handler) register(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	if errs := validateRegistration(body); len(errs) > 0 {
		fieldErrors(c, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	b := body.biometricsRequest.normalized()
	u, err := queryOne[user](h, c,
		`INSERT INTO users (email, password, age, height_inches, weight_lbs, sex, activity_level, goal)
		 VALUES (@email, @password, @age, @height, @weight, @sex, @activity, @goal)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING *`,
		pgx.NamedArgs{
			"email":    body.Email,
			"password": string(hash),
			"age":      b.Age,
			"height":   b.HeightInches,
			"weight":   b.WeightLbs,
			"sex":      b.Sex,
			"activity": b.ActivityLevel,
			"goal":     b.Goal,
		})
	if err != nil {
		// ON CONFLICT DO NOTHING returns no row for a taken email.
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusConflict, "email already registered")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to create account")
		}
		return
	}

	token, err := h.createSession(c, u.ID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "account created but login failed")
		return
	}

	h.logger.Info("user registered", zap.Int("user_id", u.ID))
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
}

// login verifies email/password and opens a new session.
// POST /api/login (public).
func (h *Handler) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Email == "" || body.Password == "" {
		apiError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	u, lookupErr := queryOne[user](h, c,
		"SELECT * FROM users WHERE email = @email",
		pgx.NamedArgs{"email": strings.ToLower(strings.TrimSpace(body.Email))})

	// Always run bcrypt, found or not.
	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = u.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Password))

	if lookupErr != nil || compareErr != nil {
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.createSession(c, u.ID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": u.ID})
}

// logout revokes the session the request was authenticated with.
// POST /api/logout.
func (h *Handler) logout(c *gin.Context) {
	if _, err := h.db.Exec(c, "DELETE FROM sessions WHERE token = @token",
		pgx.NamedArgs{"token": c.GetString("token")}); err != nil {
		h.logger.Error("delete session", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to log out")
		return
	}
	c.Status(http.StatusNoContent)
}

// createSession stores a fresh token valid for the configured session TTL.
func (h *Handler) createSession(c *gin.Context, userID int) (string, error) {
	token := uuid.New().String()
	_, err := h.db.Exec(c,
		`INSERT INTO sessions (token, user_id, expires_at)
		 VALUES (@token, @userID, @expiresAt)`,
		pgx.NamedArgs{"token": token, "userID": userID, "expiresAt": time.Now().Add(h.sessionTTL)})
	if err != nil {
		h.logger.Error("create session", zap.Int("user_id", userID), zap.Error(err))
		return "", err
	}
	return token, nil
}

// authMiddleware validates the Bearer token against unexpired sessions and
// sets user_id and token on the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if _, err := uuid.Parse(token); err != nil {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		var userID int
		err := h.db.QueryRow(c,
			"SELECT user_id FROM sessions WHERE token = $1 AND expires_at > now()", token).Scan(&userID)
		if err != nil {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("token", token)
		c.Next()
	}
}

// PruneExpiredSessions deletes sessions that expired before now. It runs from
// the scheduler, outside any request.
func (h *Handler) PruneExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	tag, err := h.db.Exec(ctx, "DELETE FROM sessions WHERE expires_at < $1", now)
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
