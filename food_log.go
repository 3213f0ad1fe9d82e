package main

import (
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lg/fittrack-go-api/internal/config"
	"lg/fittrack-go-api/internal/metabolic"
	"lg/fittrack-go-api/internal/nutrition"
)

// validMealTypes is the set of meal_type values food_logs accepts. "preset"
// is written by logPreset.
var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
	"preset":    true,
}

// newFoodLog is a validated insert for food_logs.
type newFoodLog struct {
	Description string
	Calories    int
	ProteinG    *float64
	CarbsG      *float64
	FatG        *float64
	FiberG      *float64
	MealType    string
}

// validateFoodLog checks a create request and normalizes it: calories are
// rounded to whole kcal and meal_type defaults to snack.
func validateFoodLog(body createFoodLogRequest) (newFoodLog, error) {
	if body.Description == "" {
		return newFoodLog{}, errors.New("description is required")
	}
	if body.Calories == nil || math.IsNaN(*body.Calories) || math.IsInf(*body.Calories, 0) {
		return newFoodLog{}, errors.New("calories must be a number")
	}
	if *body.Calories < 0 {
		return newFoodLog{}, errors.New("calories must not be negative")
	}
	for _, g := range []*float64{body.ProteinG, body.CarbsG, body.FatG, body.FiberG} {
		if g != nil && *g < 0 {
			return newFoodLog{}, errors.New("macro grams must not be negative")
		}
	}
	if body.MealType == "" {
		body.MealType = "snack"
	}
	if !validMealTypes[body.MealType] {
		return newFoodLog{}, errors.New("meal_type must be one of: breakfast, lunch, dinner, snack, preset")
	}

	return newFoodLog{
		Description: body.Description,
		Calories:    int(math.Floor(*body.Calories + 0.5)),
		ProteinG:    body.ProteinG,
		CarbsG:      body.CarbsG,
		FatG:        body.FatG,
		FiberG:      body.FiberG,
		MealType:    body.MealType,
	}, nil
}

// insertFoodLog writes one entry stamped with the current time.
func (h *Handler) insertFoodLog(c *gin.Context, userID string, f newFoodLog) (foodLog, error) {
	return queryOne[foodLog](h.db, c,
		`INSERT INTO food_logs (user_id, logged_at, description, calories, protein_g, carbs_g, fat_g, fiber_g, meal_type)
		 VALUES (@userID, now(), @description, @calories, @proteinG, @carbsG, @fatG, @fiberG, @mealType)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "description": f.Description, "calories": f.Calories,
			"proteinG": f.ProteinG, "carbsG": f.CarbsG, "fatG": f.FatG, "fiberG": f.FiberG,
			"mealType": f.MealType,
		})
}

// logsBetween returns the user's entries in [start, end), newest first.
func (h *Handler) logsBetween(c *gin.Context, userID string, start, end time.Time) ([]foodLog, error) {
	logs, err := queryMany[foodLog](h.db, c,
		`SELECT * FROM food_logs
		 WHERE user_id = @userID AND logged_at >= @start AND logged_at < @end
		 ORDER BY logged_at DESC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if logs == nil {
		logs = []foodLog{}
	}
	return logs, err
}

// targetsFor resolves the daily targets for u. Unset user targets fall back to
// the profile defaults; carbs and fat come from the macro split.
func targetsFor(u user, defaults config.ProfileDefaults) nutrition.Targets {
	calories := defaults.CalorieTarget
	if u.CalorieTarget != nil {
		calories = *u.CalorieTarget
	}
	protein := defaults.ProteinTargetG
	if u.ProteinTargetG != nil {
		protein = *u.ProteinTargetG
	}
	split := metabolic.Macros(calories, protein)

	return nutrition.Targets{
		Calories: float64(calories),
		Protein:  float64(split.Protein),
		Carbs:    float64(split.Carbs),
		Fat:      float64(split.Fat),
		Fiber:    float64(defaults.FiberTargetG),
	}
}

// buildDailySummary folds a day's logs against targets.
func buildDailySummary(date string, logs []foodLog, targets nutrition.Targets) dailySummary {
	totals := nutrition.Sum(entries(logs))
	return dailySummary{
		Date:        date,
		Logs:        logs,
		Totals:      totals,
		Targets:     targets,
		Progress:    nutrition.Progress(totals, targets),
		EnergyShare: nutrition.EnergyShare(totals),
		Balance:     metabolic.Deficit(int(math.Floor(totals.Calories+0.5)), int(targets.Calories)),
	}
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// createFoodLog inserts a food entry logged now.
// POST /api/food/log.
func (h *Handler) createFoodLog(c *gin.Context) {
	var body createFoodLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := validateFoodLog(body)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.insertFoodLog(c, c.GetString("user_id"), entry)
	if err != nil {
		log.Printf("[createFoodLog] insert error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to save food log")
		return
	}
	apiOK(c, http.StatusCreated, item)
}

// getTodayFoodLogs returns today's entries, newest first.
// GET /api/food/log.
func (h *Handler) getTodayFoodLogs(c *gin.Context) {
	start, end := h.dayBounds(time.Now())
	logs, err := h.logsBetween(c, c.GetString("user_id"), start, end)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch food logs")
		return
	}
	apiOK(c, http.StatusOK, logs)
}

// deleteFoodLog removes one entry.
// DELETE /api/food/log?id=<uuid>.
func (h *Handler) deleteFoodLog(c *gin.Context) {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "a valid id is required")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM food_logs WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": c.GetString("user_id")})
	if err != nil {
		log.Printf("[deleteFoodLog] delete error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to delete food log")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "food log not found")
		return
	}
	apiOK(c, http.StatusOK, gin.H{"id": id})
}

// getDailySummary returns a day's logs with totals, progress and energy split.
// GET /api/food/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	day := time.Now().In(h.loc)
	if s := c.Query("date"); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, h.loc)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		day = t
	}

	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	start, end := h.dayBounds(day)
	logs, err := h.logsBetween(c, u.ID, start, end)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch food logs")
		return
	}

	apiOK(c, http.StatusOK, buildDailySummary(start.Format(time.DateOnly), logs, targetsFor(u, h.defaults)))
}
