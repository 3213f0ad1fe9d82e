package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lg/fittrack-go-api/internal/bodycomp"
)

// getBodyMetrics returns measurements within [start, end], oldest first, each
// with its computed composition. Both params default to the last 90 days.
// GET /api/body-metrics?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) getBodyMetrics(c *gin.Context) {
	today := time.Now().In(h.loc).Format(time.DateOnly)
	start := c.DefaultQuery("start", time.Now().In(h.loc).AddDate(0, 0, -90).Format(time.DateOnly))
	end := c.DefaultQuery("end", today)

	if _, err := time.Parse(time.DateOnly, start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse(time.DateOnly, end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	metrics, err := queryMany[bodyMetric](h.db, c,
		`SELECT * FROM body_metrics
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": c.GetString("user_id"), "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch body metrics")
		return
	}
	if metrics == nil {
		metrics = []bodyMetric{}
	}
	for i := range metrics {
		metrics[i].Composition = compositionFor(metrics[i], h.defaults.TargetBodyFatPct)
	}
	apiOK(c, http.StatusOK, metrics)
}

// resolveBodyMetric validates a measurement and computes its composition.
// Height falls back to fallbackHeight when the request omits it.
func resolveBodyMetric(body recordBodyMetricRequest, fallbackHeight *float64, targetPct float64) (string, float64, bodycomp.Composition, error) {
	if body.Date == "" {
		return "", 0, bodycomp.Composition{}, errors.New("date is required")
	}
	if _, err := time.Parse(time.DateOnly, body.Date); err != nil {
		return "", 0, bodycomp.Composition{}, errors.New("invalid date, expected YYYY-MM-DD")
	}
	if body.WeightKg <= 0 || body.WeightKg > 500 {
		return "", 0, bodycomp.Composition{}, errors.New("weight_kg must be between 0 and 500")
	}

	height := body.HeightCm
	if height == nil {
		height = fallbackHeight
	}
	if height == nil {
		return "", 0, bodycomp.Composition{}, errors.New("height_cm is required until the profile has a height")
	}

	comp, err := bodycomp.SummarizeTo(body.WeightKg, body.WaistCm, body.NeckCm, *height, targetPct)
	if err != nil {
		return "", 0, bodycomp.Composition{}, err
	}
	return body.Date, *height, comp, nil
}

// recordBodyMetric stores a measurement with its body-fat percentage.
// POST /api/body-metrics. UNIQUE(user_id, date) makes a repeat post for the
// same date replace the earlier one.
func (h *Handler) recordBodyMetric(c *gin.Context) {
	var body recordBodyMetricRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	date, height, comp, err := resolveBodyMetric(body, u.HeightCm, h.defaults.TargetBodyFatPct)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	m, err := queryOne[bodyMetric](h.db, c,
		`INSERT INTO body_metrics (user_id, date, weight_kg, waist_cm, neck_cm, height_cm, body_fat_pct)
		 VALUES (@userID, @date, @weightKg, @waistCm, @neckCm, @heightCm, @bodyFatPct)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			weight_kg    = EXCLUDED.weight_kg,
			waist_cm     = EXCLUDED.waist_cm,
			neck_cm      = EXCLUDED.neck_cm,
			height_cm    = EXCLUDED.height_cm,
			body_fat_pct = EXCLUDED.body_fat_pct
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": u.ID, "date": date, "weightKg": body.WeightKg,
			"waistCm": body.WaistCm, "neckCm": body.NeckCm, "heightCm": height,
			"bodyFatPct": comp.BodyFatPercentage,
		})
	if err != nil {
		log.Printf("[recordBodyMetric] upsert error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to save body metric")
		return
	}

	// Keep the profile weight in step with the latest measurement.
	if _, err := h.db.Exec(c,
		`UPDATE users SET weight_kg = @weightKg
		 WHERE id = @userID AND NOT EXISTS (
			SELECT 1 FROM body_metrics WHERE user_id = @userID AND date > @date)`,
		pgx.NamedArgs{"userID": u.ID, "weightKg": body.WeightKg, "date": date}); err != nil {
		log.Printf("[recordBodyMetric] profile weight update failed for user %s: %v", u.ID, err)
	}

	m.Composition = &comp
	apiOK(c, http.StatusCreated, m)
}

// deleteBodyMetric removes a measurement.
// DELETE /api/body-metrics/:id.
func (h *Handler) deleteBodyMetric(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "a valid id is required")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM body_metrics WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": c.GetString("user_id")})
	if err != nil {
		log.Printf("[deleteBodyMetric] delete error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to delete body metric")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "body metric not found")
		return
	}
	apiOK(c, http.StatusOK, gin.H{"id": id})
}
