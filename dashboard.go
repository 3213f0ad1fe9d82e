package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fittrack-go-api/internal/bodycomp"
	"lg/fittrack-go-api/internal/config"
	"lg/fittrack-go-api/internal/metabolic"
	"lg/fittrack-go-api/internal/streak"
)

// streakLookbackDays bounds the logged_at scan for the streak.
const streakLookbackDays = 400

// statsFor derives metabolic stats from the user's profile, falling back to
// the configured defaults while the profile is incomplete.
func statsFor(u user, defaults config.ProfileDefaults) *metabolic.UserStats {
	p, ok := u.profile()
	if !ok {
		p = defaults.Profile
	}
	s, err := metabolic.Stats(p)
	if err != nil {
		log.Printf("[statsFor] %v", err)
		return nil
	}
	return &s
}

// compositionFor summarizes a stored measurement, or nil if it cannot be
// measured.
func compositionFor(m bodyMetric, targetPct float64) *bodycomp.Composition {
	comp, err := bodycomp.SummarizeTo(m.WeightKg, m.WaistCm, m.NeckCm, m.HeightCm, targetPct)
	if err != nil {
		return nil
	}
	return &comp
}

type dashboardInput struct {
	Now             time.Time
	User            user
	Defaults        config.ProfileDefaults
	TodayLogs       []foodLog
	LogDates        []time.Time
	LatestMetric    *bodyMetric
	ExcludeWeekends bool
}

// buildDashboard assembles the dashboard from already-fetched rows.
func buildDashboard(in dashboardInput) dashboard {
	date := in.Now.Format(time.DateOnly)

	water := in.Defaults.WaterGoalML
	if in.User.WaterGoalML != nil {
		water = *in.User.WaterGoalML
	}

	d := dashboard{
		Date:            date,
		Today:           buildDailySummary(date, in.TodayLogs, targetsFor(in.User, in.Defaults)),
		Streak:          streak.Count(in.LogDates, in.Now, in.ExcludeWeekends),
		ExcludeWeekends: in.ExcludeWeekends,
		WaterGoalML:     water,
		Stats:           statsFor(in.User, in.Defaults),
	}
	if in.LatestMetric != nil {
		m := *in.LatestMetric
		d.LatestMetric = &m
		d.BodyComposition = compositionFor(m, in.Defaults.TargetBodyFatPct)
	}
	return d
}

// getDashboard returns today's totals against targets with the logging
// streak, metabolic stats and latest body composition.
// GET /api/dashboard?exclude_weekends=true|false.
func (h *Handler) getDashboard(c *gin.Context) {
	exclude := h.defaults.ExcludeWeekends
	if s := c.Query("exclude_weekends"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "exclude_weekends must be true or false")
			return
		}
		exclude = v
	}

	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	now := time.Now().In(h.loc)
	start, end := h.dayBounds(now)

	todayLogs, err := h.logsBetween(c, u.ID, start, end)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch food logs")
		return
	}

	rows, err := h.db.Query(c,
		`SELECT logged_at FROM food_logs
		 WHERE user_id = @userID AND logged_at >= @since
		 ORDER BY logged_at DESC`,
		pgx.NamedArgs{"userID": u.ID, "since": start.AddDate(0, 0, -streakLookbackDays)})
	if err != nil {
		log.Printf("[getDashboard] streak query error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to compute streak")
		return
	}
	dates, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
	if err != nil {
		log.Printf("[getDashboard] streak scan error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to compute streak")
		return
	}

	var latest *bodyMetric
	m, err := queryOne[bodyMetric](h.db, c,
		"SELECT * FROM body_metrics WHERE user_id = @userID ORDER BY date DESC LIMIT 1",
		pgx.NamedArgs{"userID": u.ID})
	switch {
	case err == nil:
		latest = &m
	case !errors.Is(err, pgx.ErrNoRows):
		apiError(c, http.StatusInternalServerError, "failed to fetch body metrics")
		return
	}

	apiOK(c, http.StatusOK, buildDashboard(dashboardInput{
		Now:             now,
		User:            u,
		Defaults:        h.defaults,
		TodayLogs:       todayLogs,
		LogDates:        dates,
		LatestMetric:    latest,
		ExcludeWeekends: exclude,
	}))
}
