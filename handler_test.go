package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"lg/fittrack-go-api/internal/config"
)

// newTestHandler builds a Handler with no DB. Only handlers that return
// before touching h.db can be exercised with it.
func newTestHandler() *Handler {
	return &Handler{
		cfg:      &config.Config{SessionSecret: "test-secret", AppEnv: "development"},
		defaults: config.DefaultProfile(),
		pinLimit: newRateLimiter(5, 15*time.Minute),
		loc:      time.UTC,
	}
}

// doJSON sends a request with a JSON body through router.
func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// envelope is the {"success","data","error"} response shape.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return env
}

func TestAPIError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/x", func(c *gin.Context) { apiError(c, http.StatusTeapot, "nope") })

	w := doJSON(router, http.MethodGet, "/x", "")
	if w.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", w.Code)
	}
	env := decode[any](t, w)
	if env.Success || env.Error != "nope" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestDayBounds(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	h := &Handler{loc: ist}

	// 20:00 UTC on the 11th is 01:30 on the 12th in IST
	start, end := h.dayBounds(time.Date(2026, 10, 11, 20, 0, 0, 0, time.UTC))
	if got := start.Format(time.DateOnly); got != "2026-10-12" {
		t.Errorf("start = %s, want 2026-10-12", got)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("day length = %v, want 24h", end.Sub(start))
	}
}
