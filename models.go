package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"lg/fittrack-go-api/internal/bodycomp"
	"lg/fittrack-go-api/internal/metabolic"
	"lg/fittrack-go-api/internal/nutrition"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(time.DateOnly) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns into DateOnly. NULL zeroes the time.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. There is one row per deployment; profile
// fields are nullable until the owner fills them in.
type user struct {
	ID             string     `json:"id"               db:"id"`
	PinHash        string     `json:"-"                db:"pin_hash"`
	WeightKg       *float64   `json:"weight_kg"        db:"weight_kg"`
	HeightCm       *float64   `json:"height_cm"        db:"height_cm"`
	Age            *int       `json:"age"              db:"age"`
	ActivityLevel  *string    `json:"activity_level"   db:"activity_level"`
	Goal           *string    `json:"goal"             db:"goal"`
	CalorieTarget  *int       `json:"calorie_target"   db:"calorie_target"`
	ProteinTargetG *int       `json:"protein_target_g" db:"protein_target_g"`
	WaterGoalML    *int       `json:"water_goal_ml"    db:"water_goal_ml"`
	CreatedAt      *time.Time `json:"created_at"       db:"created_at"`

	// Computed from the profile; not stored.
	Stats *metabolic.UserStats `json:"stats,omitempty" db:"-"`
}

// profile returns the metabolic profile, or ok=false while any field is unset.
func (u user) profile() (metabolic.Profile, bool) {
	if u.WeightKg == nil || u.HeightCm == nil || u.Age == nil ||
		u.ActivityLevel == nil || u.Goal == nil {
		return metabolic.Profile{}, false
	}
	return metabolic.Profile{
		WeightKg:      *u.WeightKg,
		HeightCm:      *u.HeightCm,
		Age:           *u.Age,
		ActivityLevel: metabolic.ActivityLevel(*u.ActivityLevel),
		Goal:          metabolic.Goal(*u.Goal),
	}, true
}

// foodLog maps to food_logs. Gram fields stay NULL when not supplied.
type foodLog struct {
	ID          string     `json:"id"          db:"id"`
	UserID      string     `json:"user_id"     db:"user_id"`
	LoggedAt    time.Time  `json:"logged_at"   db:"logged_at"`
	Description string     `json:"description" db:"description"`
	Calories    int        `json:"calories"    db:"calories"`
	ProteinG    *float64   `json:"protein_g"   db:"protein_g"`
	CarbsG      *float64   `json:"carbs_g"     db:"carbs_g"`
	FatG        *float64   `json:"fat_g"       db:"fat_g"`
	FiberG      *float64   `json:"fiber_g"     db:"fiber_g"`
	MealType    string     `json:"meal_type"   db:"meal_type"`
	CreatedAt   *time.Time `json:"created_at"  db:"created_at"`
}

func (f foodLog) entry() nutrition.Entry {
	return nutrition.Entry{
		ID:       f.ID,
		Calories: f.Calories,
		ProteinG: f.ProteinG,
		CarbsG:   f.CarbsG,
		FatG:     f.FatG,
		FiberG:   f.FiberG,
		LoggedAt: f.LoggedAt,
		MealType: f.MealType,
	}
}

func entries(logs []foodLog) []nutrition.Entry {
	out := make([]nutrition.Entry, len(logs))
	for i, l := range logs {
		out[i] = l.entry()
	}
	return out
}

// foodPreset maps to food_presets: a saved food that can be re-logged in one tap.
type foodPreset struct {
	ID          string     `json:"id"          db:"id"`
	UserID      string     `json:"user_id"     db:"user_id"`
	Name        string     `json:"name"        db:"name"`
	Description string     `json:"description" db:"description"`
	Calories    int        `json:"calories"    db:"calories"`
	ProteinG    *float64   `json:"protein_g"   db:"protein_g"`
	CarbsG      *float64   `json:"carbs_g"     db:"carbs_g"`
	FatG        *float64   `json:"fat_g"       db:"fat_g"`
	FiberG      *float64   `json:"fiber_g"     db:"fiber_g"`
	CreatedAt   *time.Time `json:"created_at"  db:"created_at"`
}

// bodyMetric maps to body_metrics. One row per user per date.
type bodyMetric struct {
	ID         string     `json:"id"           db:"id"`
	UserID     string     `json:"user_id"      db:"user_id"`
	Date       DateOnly   `json:"date"         db:"date"`
	WeightKg   float64    `json:"weight_kg"    db:"weight_kg"`
	WaistCm    float64    `json:"waist_cm"     db:"waist_cm"`
	NeckCm     float64    `json:"neck_cm"      db:"neck_cm"`
	HeightCm   float64    `json:"height_cm"    db:"height_cm"`
	BodyFatPct float64    `json:"body_fat_pct" db:"body_fat_pct"`
	CreatedAt  *time.Time `json:"created_at"   db:"created_at"`

	Composition *bodycomp.Composition `json:"composition,omitempty" db:"-"`
}

/* ─── Requests ───────────────────────────────────────────────────────── */

// createFoodLogRequest is the body for POST /api/food/log. Calories is a
// pointer so a missing value can be told apart from 0.
type createFoodLogRequest struct {
	Description string   `json:"description"`
	Calories    *float64 `json:"calories"`
	ProteinG    *float64 `json:"protein_g"`
	CarbsG      *float64 `json:"carbs_g"`
	FatG        *float64 `json:"fat_g"`
	FiberG      *float64 `json:"fiber_g"`
	MealType    string   `json:"meal_type"`
}

// createPresetRequest is the body for POST /api/food/presets.
type createPresetRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Calories    *float64 `json:"calories"`
	ProteinG    *float64 `json:"protein_g"`
	CarbsG      *float64 `json:"carbs_g"`
	FatG        *float64 `json:"fat_g"`
	FiberG      *float64 `json:"fiber_g"`
}

// patchProfileRequest is the body for PATCH /api/profile. Only non-nil fields
// are written.
type patchProfileRequest struct {
	WeightKg       *float64 `json:"weight_kg"`
	HeightCm       *float64 `json:"height_cm"`
	Age            *int     `json:"age"`
	ActivityLevel  *string  `json:"activity_level"`
	Goal           *string  `json:"goal"`
	CalorieTarget  *int     `json:"calorie_target"`
	ProteinTargetG *int     `json:"protein_target_g"`
	WaterGoalML    *int     `json:"water_goal_ml"`
}

// recordBodyMetricRequest is the body for POST /api/body-metrics. HeightCm
// falls back to the profile height.
type recordBodyMetricRequest struct {
	Date     string   `json:"date"`
	WeightKg float64  `json:"weight_kg"`
	WaistCm  float64  `json:"waist_cm"`
	NeckCm   float64  `json:"neck_cm"`
	HeightCm *float64 `json:"height_cm"`
}

/* ─── Responses ──────────────────────────────────────────────────────── */

// dailySummary is the response shape for GET /api/food/daily.
type dailySummary struct {
	Date        string                  `json:"date"`
	Logs        []foodLog               `json:"logs"`
	Totals      nutrition.Totals        `json:"totals"`
	Targets     nutrition.Targets       `json:"targets"`
	Progress    nutrition.Percentages   `json:"progress"`
	EnergyShare nutrition.MacroShare    `json:"energy_share"`
	Balance     metabolic.DeficitResult `json:"balance"`
}

// historyDay is one day in GET /api/food/history.
type historyDay struct {
	Date   string           `json:"date"`
	Logs   []foodLog        `json:"logs"`
	Totals nutrition.Totals `json:"totals"`
}

// dashboard is the response shape for GET /api/dashboard.
type dashboard struct {
	Date            string                `json:"date"`
	Today           dailySummary          `json:"today"`
	Streak          int                   `json:"streak"`
	ExcludeWeekends bool                  `json:"exclude_weekends"`
	WaterGoalML     int                   `json:"water_goal_ml"`
	Stats           *metabolic.UserStats  `json:"stats"`
	BodyComposition *bodycomp.Composition `json:"body_composition"`
	LatestMetric    *bodyMetric           `json:"latest_metric"`
}
