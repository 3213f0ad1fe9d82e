package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/fittrack-go-api/internal/bodycomp"
	"lg/fittrack-go-api/internal/metabolic"
)

// Stateless calculators. Nothing here touches the database.

// calcStats runs the metabolic chain for a posted profile.
// POST /api/calc/stats.
func (h *Handler) calcStats(c *gin.Context) {
	var p metabolic.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.WeightKg <= 0 || p.HeightCm <= 0 || p.Age <= 0 {
		apiError(c, http.StatusBadRequest, "weight_kg, height_cm and age must be positive")
		return
	}
	if !metabolic.ValidGoal(string(p.Goal)) {
		apiError(c, http.StatusBadRequest, "goal must be one of: lose, maintain, gain, recomp")
		return
	}

	stats, err := metabolic.Stats(p)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	apiOK(c, http.StatusOK, stats)
}

// calcBodyComposition measures body fat with the Navy formula.
// POST /api/calc/body-composition.
func (h *Handler) calcBodyComposition(c *gin.Context) {
	var body struct {
		WeightKg  float64  `json:"weight_kg"`
		WaistCm   float64  `json:"waist_cm"`
		NeckCm    float64  `json:"neck_cm"`
		HeightCm  float64  `json:"height_cm"`
		TargetPct *float64 `json:"target_pct"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	target := h.defaults.TargetBodyFatPct
	if body.TargetPct != nil {
		target = *body.TargetPct
	}

	comp, err := bodycomp.SummarizeTo(body.WeightKg, body.WaistCm, body.NeckCm, body.HeightCm, target)
	if err != nil {
		if errors.Is(err, bodycomp.ErrInvalidMeasurement) {
			apiError(c, http.StatusBadRequest, err.Error())
		} else {
			apiError(c, http.StatusInternalServerError, "failed to compute body composition")
		}
		return
	}
	apiOK(c, http.StatusOK, comp)
}

// calcDeficit classifies consumed calories against a target.
// POST /api/calc/deficit.
func (h *Handler) calcDeficit(c *gin.Context) {
	var body struct {
		Consumed *int `json:"consumed"`
		Target   *int `json:"target"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Consumed == nil || body.Target == nil {
		apiError(c, http.StatusBadRequest, "consumed and target are required")
		return
	}
	apiOK(c, http.StatusOK, metabolic.Deficit(*body.Consumed, *body.Target))
}

// calcDaysToGoal projects days until goal weight. days is null when the
// weekly change does not move toward the goal.
// POST /api/calc/days-to-goal.
func (h *Handler) calcDaysToGoal(c *gin.Context) {
	var body struct {
		CurrentWeight *float64 `json:"current_weight"`
		GoalWeight    *float64 `json:"goal_weight"`
		WeeklyChange  *float64 `json:"weekly_change"`
	}
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.CurrentWeight == nil || body.GoalWeight == nil || body.WeeklyChange == nil {
		apiError(c, http.StatusBadRequest, "current_weight, goal_weight and weekly_change are required")
		return
	}

	var days *int
	if n, ok := metabolic.DaysToGoal(*body.CurrentWeight, *body.GoalWeight, *body.WeeklyChange); ok {
		days = &n
	}
	apiOK(c, http.StatusOK, gin.H{"days": days})
}
