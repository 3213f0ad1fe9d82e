package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lg/fittrack-go-api/internal/config"
)

// Handler holds shared dependencies (db pool, config, AI client) for all
// route handlers.
type Handler struct {
	db       *pgxpool.Pool
	cfg      *config.Config
	defaults config.ProfileDefaults
	ai       completer // nil when no AI key is configured
	pinLimit *rateLimiter
	loc      *time.Location // calendar-day boundaries
}

func newHandler(db *pgxpool.Pool, cfg *config.Config, defaults config.ProfileDefaults) *Handler {
	return &Handler{
		db:       db,
		cfg:      cfg,
		defaults: defaults,
		ai:       newCompleter(cfg),
		pinLimit: newRateLimiter(5, 15*time.Minute),
		loc:      time.Local,
	}
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

/* ─── Response helpers ────────────────────────────────────────────────── */

// apiError returns a consistent JSON error response:
// {"success": false, "error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// apiOK wraps data in {"success": true, "data": ...}.
func apiOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. Simple protocol avoids "cached plan
// must not change result type" errors from hosted Postgres poolers after
// schema changes.
func getDBPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/api/auth/verify", h.pinLimit.middleware(), h.verifyPin)
	router.POST("/api/auth/logout", h.logout)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.POST("/ai/analyze-food", h.analyzeFood)

	api.GET("/food/log", h.getTodayFoodLogs)
	api.POST("/food/log", h.createFoodLog)
	api.DELETE("/food/log", h.deleteFoodLog)
	api.GET("/food/daily", h.getDailySummary)
	api.GET("/food/history", h.getFoodHistory)
	api.GET("/food/presets", h.getPresets)
	api.POST("/food/presets", h.createPreset)
	api.DELETE("/food/presets", h.deletePreset)
	api.POST("/food/presets/:id/log", h.logPreset)

	api.GET("/dashboard", h.getDashboard)
	api.GET("/profile", h.getProfile)
	api.PATCH("/profile", h.patchProfile)

	api.GET("/body-metrics", h.getBodyMetrics)
	api.POST("/body-metrics", h.recordBodyMetric)
	api.DELETE("/body-metrics/:id", h.deleteBodyMetric)

	api.POST("/calc/stats", h.calcStats)
	api.POST("/calc/body-composition", h.calcBodyComposition)
	api.POST("/calc/deficit", h.calcDeficit)
	api.POST("/calc/days-to-goal", h.calcDaysToGoal)
}

/* ─── Shared lookups ──────────────────────────────────────────────────── */

// currentUser loads the authenticated user row. On failure it writes the
// error response and returns ok=false.
func (h *Handler) currentUser(c *gin.Context) (user, bool) {
	u, err := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE id = @userID",
		pgx.NamedArgs{"userID": c.GetString("user_id")})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusUnauthorized, "user not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch user")
		}
		return user{}, false
	}
	return u, true
}

// dayBounds returns [start, end) of the calendar day containing t in h.loc.
func (h *Handler) dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(h.loc)
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, h.loc)
	return start, start.AddDate(0, 0, 1)
}
