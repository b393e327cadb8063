package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lg/nutrichat-api/coach"
	"lg/nutrichat-api/nutrition"
)

// Handler holds shared dependencies for all route handlers.
type Handler struct {
	db         *pgxpool.Pool
	coach      *coach.Coach
	logger     *zap.Logger
	sessionTTL time.Duration
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Scan errors usually mean a struct/column mismatch, so both kinds are logged.
func queryOne[T any](h *Handler, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := h.db.Query(c, sql, args)
	if err != nil {
		h.logger.Error("query failed", zap.Error(err))
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		h.logger.Error("scan failed", zap.Error(err))
	}
	return result, err
}

// uniqueViolation is the PostgreSQL error code for a unique constraint breach.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](h *Handler, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := h.db.Query(c, sql, args)
	if err != nil {
		h.logger.Error("query failed", zap.Error(err))
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		h.logger.Error("scan failed", zap.Error(err))
	}
	return results, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// fieldErrors responds 400 with a per-field breakdown.
func fieldErrors(c *gin.Context, errs nutrition.FieldErrors) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": errs})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newDBPool creates a connection pool using the simple query protocol, which
// avoids "cached plan must not change result type" errors after migrations.
func newDBPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse DB_URL: %w", err)
	}
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	router.POST("/api/register", h.register)
	router.POST("/api/login", h.login)
	router.GET("/api/options", h.getOptions)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.POST("/logout", h.logout)
	api.GET("/profile", h.getProfile)
	api.PATCH("/profile", h.patchProfile)
	api.GET("/nutrition-profile", h.getNutritionProfile)
	api.GET("/logs", h.getLogs)
	api.POST("/logs", h.upsertLog)
	api.PUT("/logs/:id", h.updateLog)
	api.DELETE("/logs/:id", h.deleteLog)
	api.GET("/logs/summary", h.getLogSummary)
	api.GET("/logs/chart", h.getLogChart)
	api.POST("/coach/advice", h.postAdvice)
	api.POST("/coach/progress", h.postProgress)
	api.POST("/coach/meal", h.postMealSuggestion)
	api.GET("/coach/tip", h.getTip)
}
