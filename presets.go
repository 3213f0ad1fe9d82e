package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// getPresets lists saved foods alphabetically.
// GET /api/food/presets.
func (h *Handler) getPresets(c *gin.Context) {
	presets, err := queryMany[foodPreset](h.db, c,
		"SELECT * FROM food_presets WHERE user_id = @userID ORDER BY name",
		pgx.NamedArgs{"userID": c.GetString("user_id")})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch presets")
		return
	}
	if presets == nil {
		presets = []foodPreset{}
	}
	apiOK(c, http.StatusOK, presets)
}

// createPreset saves a reusable food. Validation mirrors createFoodLog.
// POST /api/food/presets.
func (h *Handler) createPreset(c *gin.Context) {
	var body createPresetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" {
		apiError(c, http.StatusBadRequest, "name is required")
		return
	}
	if body.Description == "" {
		body.Description = body.Name
	}
	entry, err := validateFoodLog(createFoodLogRequest{
		Description: body.Description,
		Calories:    body.Calories,
		ProteinG:    body.ProteinG,
		CarbsG:      body.CarbsG,
		FatG:        body.FatG,
		FiberG:      body.FiberG,
	})
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	preset, err := queryOne[foodPreset](h.db, c,
		`INSERT INTO food_presets (user_id, name, description, calories, protein_g, carbs_g, fat_g, fiber_g)
		 VALUES (@userID, @name, @description, @calories, @proteinG, @carbsG, @fatG, @fiberG)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": c.GetString("user_id"), "name": body.Name, "description": entry.Description,
			"calories": entry.Calories, "proteinG": entry.ProteinG, "carbsG": entry.CarbsG,
			"fatG": entry.FatG, "fiberG": entry.FiberG,
		})
	if err != nil {
		log.Printf("[createPreset] insert error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to save preset")
		return
	}
	apiOK(c, http.StatusCreated, preset)
}

// deletePreset removes a saved food. Entries already logged from it stay.
// DELETE /api/food/presets?id=<uuid>.
func (h *Handler) deletePreset(c *gin.Context) {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "a valid id is required")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM food_presets WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": c.GetString("user_id")})
	if err != nil {
		log.Printf("[deletePreset] delete error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to delete preset")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "preset not found")
		return
	}
	apiOK(c, http.StatusOK, gin.H{"id": id})
}

// logPreset copies a preset into food_logs with meal_type "preset".
// POST /api/food/presets/:id/log.
func (h *Handler) logPreset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "a valid id is required")
		return
	}
	userID := c.GetString("user_id")

	preset, err := queryOne[foodPreset](h.db, c,
		"SELECT * FROM food_presets WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "preset not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch preset")
		}
		return
	}

	item, err := h.insertFoodLog(c, userID, presetEntry(preset))
	if err != nil {
		log.Printf("[logPreset] insert error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to save food log")
		return
	}
	apiOK(c, http.StatusCreated, item)
}

func presetEntry(p foodPreset) newFoodLog {
	return newFoodLog{
		Description: p.Description,
		Calories:    p.Calories,
		ProteinG:    p.ProteinG,
		CarbsG:      p.CarbsG,
		FatG:        p.FatG,
		FiberG:      p.FiberG,
		MealType:    "preset",
	}
}
