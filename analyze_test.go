package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"lg/fittrack-go-api/internal/config"
)

// fakeCompleter returns a canned reply and records the prompt it was sent.
type fakeCompleter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeCompleter) complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func setupAnalyzeTest(ai completer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	h.ai = ai
	router := gin.New()
	router.POST("/api/ai/analyze-food", h.analyzeFood)
	return router
}

/* ─── Reply parsing ──────────────────────────────────────────────────── */

func TestParseFoodAnalysis(t *testing.T) {
	cases := []struct {
		name    string
		reply   string
		wantErr bool
		wantCal float64
	}{
		{"bare object", `{"food_name":"Paneer","calories":265,"protein_g":18,"carbs_g":6,"fat_g":20,"fiber_g":0,"confidence":"high"}`, false, 265},
		{"markdown fence", "```json\n{\"calories\":400,\"protein_g\":20,\"carbs_g\":50,\"fat_g\":12}\n```", false, 400},
		{"prose around", "Here you go: {\"calories\":0,\"protein_g\":0,\"carbs_g\":0,\"fat_g\":0} Enjoy!", false, 0},
		{"no json", "I cannot help with that", true, 0},
		{"missing fat", `{"calories":100,"protein_g":1,"carbs_g":2}`, true, 0},
		{"string calories", `{"calories":"100","protein_g":1,"carbs_g":2,"fat_g":3}`, true, 0},
		{"broken json", `{"calories":100,`, true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseFoodAnalysis(tc.reply)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Calories != tc.wantCal {
				t.Errorf("calories = %v, want %v", got.Calories, tc.wantCal)
			}
		})
	}
}

/* ─── Handler ────────────────────────────────────────────────────────── */

func TestAnalyzeFood_Success(t *testing.T) {
	ai := &fakeCompleter{reply: "```json\n{\"food_name\":\"Roti with dal\",\"portion_description\":\"2 rotis, 1 cup dal\",\"calories\":420,\"protein_g\":18,\"carbs_g\":70,\"fat_g\":8,\"fiber_g\":9,\"confidence\":\"medium\"}\n```"}
	router := setupAnalyzeTest(ai)

	w := doJSON(router, http.MethodPost, "/api/ai/analyze-food", `{"description":"  2 rotis with dal  "}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	env := decode[foodAnalysis](t, w)
	if !env.Success || env.Data.FoodName != "Roti with dal" || env.Data.FiberG != 9 {
		t.Errorf("unexpected response: %+v", env)
	}
	if !strings.Contains(ai.prompt, "Food description: 2 rotis with dal\n") {
		t.Errorf("prompt should carry the trimmed description, got %q", ai.prompt)
	}
}

func TestAnalyzeFood_Failures(t *testing.T) {
	cases := []struct {
		name       string
		ai         completer
		body       string
		wantStatus int
	}{
		{"empty description", &fakeCompleter{}, `{"description":"   "}`, http.StatusBadRequest},
		{"missing description", &fakeCompleter{}, `{}`, http.StatusBadRequest},
		{"not configured", nil, `{"description":"eggs"}`, http.StatusServiceUnavailable},
		{"provider error", &fakeCompleter{err: errors.New("boom")}, `{"description":"eggs"}`, http.StatusInternalServerError},
		{"unusable reply", &fakeCompleter{reply: "no idea"}, `{"description":"eggs"}`, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(setupAnalyzeTest(tc.ai), http.MethodPost, "/api/ai/analyze-food", tc.body)
			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, w.Code, w.Body.String())
			}
			if env := decode[any](t, w); env.Success || env.Error == "" {
				t.Errorf("expected an error envelope, got %+v", env)
			}
		})
	}
}

/* ─── Provider clients ───────────────────────────────────────────────── */

// mockServer returns a server replying with status and body, and records the
// last request it saw.
func mockServer(t *testing.T, status int, body any) (*httptest.Server, **http.Request) {
	var last *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

func TestGeminiClient(t *testing.T) {
	srv, last := mockServer(t, http.StatusOK, map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": `{"calories":1}`}}}},
		},
	})
	g := newCompleter(&config.Config{AIProvider: "gemini", GeminiAPIKey: "k", GeminiModel: "gemini-2.0-flash", GeminiBaseURL: srv.URL})

	got, err := g.complete(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"calories":1}` {
		t.Errorf("reply = %q", got)
	}
	if (*last).URL.Path != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("path = %q", (*last).URL.Path)
	}
	if (*last).URL.Query().Get("key") != "k" {
		t.Errorf("api key not sent as query param")
	}
}

func TestOpenAIClient(t *testing.T) {
	srv, last := mockServer(t, http.StatusOK, map[string]any{
		"choices": []map[string]any{{"message": map[string]any{"content": "ok"}}},
	})
	o := newCompleter(&config.Config{AIProvider: "openai", OpenAIAPIKey: "sk", OpenAIModel: "gpt-4o-mini", OpenAIBaseURL: srv.URL})

	got, err := o.complete(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("reply = %q", got)
	}
	if (*last).Header.Get("Authorization") != "Bearer sk" {
		t.Errorf("missing bearer token")
	}
	if (*last).URL.Path != "/v1/chat/completions" {
		t.Errorf("path = %q", (*last).URL.Path)
	}
}

func TestProviderErrors(t *testing.T) {
	srv, _ := mockServer(t, http.StatusTooManyRequests, map[string]any{"error": "quota"})
	for _, cfg := range []*config.Config{
		{AIProvider: "gemini", GeminiAPIKey: "k", GeminiModel: "m", GeminiBaseURL: srv.URL},
		{AIProvider: "openai", OpenAIAPIKey: "k", OpenAIModel: "m", OpenAIBaseURL: srv.URL},
	} {
		if _, err := newCompleter(cfg).complete(context.Background(), "hi"); err == nil {
			t.Errorf("%s: expected error for non-200 status", cfg.AIProvider)
		}
	}

	empty, _ := mockServer(t, http.StatusOK, map[string]any{"candidates": []any{}})
	g := newCompleter(&config.Config{GeminiAPIKey: "k", GeminiModel: "m", GeminiBaseURL: empty.URL})
	if _, err := g.complete(context.Background(), "hi"); err == nil {
		t.Error("expected error for empty candidates")
	}
}

func TestNewCompleter_NoKey(t *testing.T) {
	if c := newCompleter(&config.Config{AIProvider: "gemini"}); c != nil {
		t.Errorf("expected nil completer without a Gemini key, got %T", c)
	}
	if c := newCompleter(&config.Config{AIProvider: "openai", GeminiAPIKey: "k"}); c != nil {
		t.Errorf("expected nil completer without an OpenAI key, got %T", c)
	}
}

func TestNewCompleter_Timeout(t *testing.T) {
	g, ok := newCompleter(&config.Config{AIProvider: "gemini", GeminiAPIKey: "k"}).(*geminiClient)
	if !ok {
		t.Fatal("expected a gemini client")
	}
	if g.http.Timeout != 15*time.Second {
		t.Errorf("gemini client timeout = %v, want 15s", g.http.Timeout)
	}
	o, ok := newCompleter(&config.Config{AIProvider: "openai", OpenAIAPIKey: "k"}).(*openAIClient)
	if !ok {
		t.Fatal("expected an openai client")
	}
	if o.http.Timeout != 15*time.Second {
		t.Errorf("openai client timeout = %v, want 15s", o.http.Timeout)
	}
}
