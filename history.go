package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lg/fittrack-go-api/internal/nutrition"
)

const maxHistoryDays = 365

// groupHistory buckets logs (newest first) into per-day totals. Days with no
// entries are omitted.
func groupHistory(logs []foodLog, loc *time.Location) []historyDay {
	byID := make(map[string]foodLog, len(logs))
	for _, l := range logs {
		byID[l.ID] = l
	}

	groups := nutrition.GroupByDay(entries(logs), loc)
	days := make([]historyDay, len(groups))
	for i, g := range groups {
		dayLogs := make([]foodLog, len(g.Entries))
		for j, e := range g.Entries {
			dayLogs[j] = byID[e.ID]
		}
		days[i] = historyDay{Date: g.Date, Logs: dayLogs, Totals: g.Totals}
	}
	return days
}

// historyWindow spans exactly days local calendar days ending with the day
// holding now.
func (h *Handler) historyWindow(now time.Time, days int) (time.Time, time.Time) {
	todayStart, end := h.dayBounds(now)
	return todayStart.AddDate(0, 0, -(days - 1)), end
}

// getFoodHistory returns the last N days (today included) grouped by day.
// GET /api/food/history?days=7.
func (h *Handler) getFoodHistory(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 || days > maxHistoryDays {
		apiError(c, http.StatusBadRequest, "days must be between 1 and 365")
		return
	}

	start, end := h.historyWindow(time.Now(), days)

	logs, err := h.logsBetween(c, c.GetString("user_id"), start, end)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch food history")
		return
	}
	apiOK(c, http.StatusOK, groupHistory(logs, h.loc))
}
