package main

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fittrack-go-api/internal/metabolic"
	"lg/fittrack-go-api/internal/nutrition"
)

// profileResponse is a user with computed stats and resolved targets.
type profileResponse struct {
	user
	Targets nutrition.Targets `json:"targets"`
}

func (h *Handler) profileView(u user) profileResponse {
	u.Stats = statsFor(u, h.defaults)
	return profileResponse{user: u, Targets: targetsFor(u, h.defaults)}
}

// getProfile returns the owner's profile, derived stats and daily targets.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	apiOK(c, http.StatusOK, h.profileView(u))
}

// validateProfilePatch rejects out-of-range values before they reach the DB.
func validateProfilePatch(body patchProfileRequest) error {
	if body.ActivityLevel != nil && !metabolic.ValidActivityLevel(*body.ActivityLevel) {
		return errors.New("activity_level must be one of: sedentary, light, moderate, active, very_active")
	}
	if body.Goal != nil && !metabolic.ValidGoal(*body.Goal) {
		return errors.New("goal must be one of: lose, maintain, gain, recomp")
	}
	if body.WeightKg != nil && (*body.WeightKg <= 0 || *body.WeightKg > 500) {
		return errors.New("weight_kg must be between 0 and 500")
	}
	if body.HeightCm != nil && (*body.HeightCm <= 0 || *body.HeightCm > 300) {
		return errors.New("height_cm must be between 0 and 300")
	}
	if body.Age != nil && (*body.Age <= 0 || *body.Age > 150) {
		return errors.New("age must be between 1 and 150")
	}
	for _, v := range []*int{body.CalorieTarget, body.ProteinTargetG, body.WaterGoalML} {
		if v != nil && *v < 0 {
			return errors.New("targets must not be negative")
		}
	}
	return nil
}

// profileSetClauses builds the SET list for fields the client sent.
func profileSetClauses(body patchProfileRequest) ([]string, pgx.NamedArgs) {
	set := []string{}
	args := pgx.NamedArgs{}
	add := func(col, arg string, v any) {
		set = append(set, col+" = @"+arg)
		args[arg] = v
	}

	if body.WeightKg != nil {
		add("weight_kg", "weightKg", *body.WeightKg)
	}
	if body.HeightCm != nil {
		add("height_cm", "heightCm", *body.HeightCm)
	}
	if body.Age != nil {
		add("age", "age", *body.Age)
	}
	if body.ActivityLevel != nil {
		add("activity_level", "activityLevel", *body.ActivityLevel)
	}
	if body.Goal != nil {
		add("goal", "goal", *body.Goal)
	}
	if body.CalorieTarget != nil {
		add("calorie_target", "calorieTarget", *body.CalorieTarget)
	}
	if body.ProteinTargetG != nil {
		add("protein_target_g", "proteinTargetG", *body.ProteinTargetG)
	}
	if body.WaterGoalML != nil {
		add("water_goal_ml", "waterGoalML", *body.WaterGoalML)
	}
	return set, args
}

// patchProfile updates only the fields present in the body.
// PATCH /api/profile.
func (h *Handler) patchProfile(c *gin.Context) {
	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateProfilePatch(body); err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	setClauses, args := profileSetClauses(body)
	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}
	args["userID"] = c.GetString("user_id")

	query := "UPDATE users SET " + strings.Join(setClauses, ", ") +
		" WHERE id = @userID RETURNING *"

	u, err := queryOne[user](h.db, c, query, args)
	if err != nil {
		log.Printf("[patchProfile] update error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	apiOK(c, http.StatusOK, h.profileView(u))
}
