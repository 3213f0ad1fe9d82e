package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lg/fittrack-go-api/internal/config"
)

/* ─── Types ──────────────────────────────────────────────────────────── */

// foodAnalysis is the nutrition estimate returned by the AI.
type foodAnalysis struct {
	FoodName           string  `json:"food_name"`
	PortionDescription string  `json:"portion_description"`
	Calories           float64 `json:"calories"`
	ProteinG           float64 `json:"protein_g"`
	CarbsG             float64 `json:"carbs_g"`
	FatG               float64 `json:"fat_g"`
	FiberG             float64 `json:"fiber_g"`
	Confidence         string  `json:"confidence"` // high | medium | low
}

// completer sends a single text prompt to a language model and returns its
// text reply.
type completer interface {
	complete(ctx context.Context, prompt string) (string, error)
}

const foodAnalysisPrompt = `You are a nutrition expert specializing in Indian cuisine.

Analyze the following food description and return ONLY a JSON object with nutritional information.
Be accurate for Indian foods like paneer (25g protein per 100g), roti (3g protein per piece), dal (7-9g protein per cup cooked), eggs (6g protein each).

Food description: %s

Return ONLY this JSON format, no other text:
{
  "food_name": "standardized name of the food",
  "portion_description": "estimated portion size",
  "calories": number (kcal),
  "protein_g": number,
  "carbs_g": number,
  "fat_g": number,
  "fiber_g": number,
  "confidence": "high" | "medium" | "low"
}

If multiple items, sum them up into one response.`

const aiTimeout = 15 * time.Second

// newCompleter picks the configured provider. Returns nil when the provider
// has no API key, which disables /api/ai/analyze-food.
func newCompleter(cfg *config.Config) completer {
	switch cfg.AIProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil
		}
		return &openAIClient{apiKey: cfg.OpenAIAPIKey, model: cfg.OpenAIModel, baseURL: cfg.OpenAIBaseURL,
			http: &http.Client{Timeout: aiTimeout}}
	default:
		if cfg.GeminiAPIKey == "" {
			return nil
		}
		return &geminiClient{apiKey: cfg.GeminiAPIKey, model: cfg.GeminiModel, baseURL: cfg.GeminiBaseURL,
			http: &http.Client{Timeout: aiTimeout}}
	}
}

/* ─── Gemini ─────────────────────────────────────────────────────────── */

type geminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

func (g *geminiClient) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(struct {
		Contents []geminiContent `json:"contents"`
	}{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
	respBytes, err := postJSON(ctx, g.http, endpoint, body, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	var result struct {
		Candidates []struct {
			Content geminiContent `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("gemini: unmarshal response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: no candidates in response")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

/* ─── OpenAI ─────────────────────────────────────────────────────────── */

type openAIClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat map[string]any  `json:"response_format"`
}

func (o *openAIClient) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(openAIRequest{
		Model:          o.model,
		Messages:       []openAIMessage{{Role: "user", Content: prompt}},
		Temperature:    0,
		ResponseFormat: map[string]any{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	respBytes, err := postJSON(ctx, o.http, o.baseURL+"/v1/chat/completions", body,
		map[string]string{"Authorization": "Bearer " + o.apiKey})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("openai: unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("openai: no choices in response")
	}
	return result.Choices[0].Message.Content, nil
}

// postJSON POSTs body and returns the response body, or an error for any
// non-200 status.
func postJSON(ctx context.Context, client *http.Client, endpoint string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(respBytes))
	}
	return respBytes, nil
}

/* ─── Reply parsing ──────────────────────────────────────────────────── */

// jsonObject matches from the first '{' to the last '}', which skips any
// markdown fence or prose around the object.
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// parseFoodAnalysis extracts the JSON object from a model reply and checks
// the required numeric fields are present.
func parseFoodAnalysis(reply string) (foodAnalysis, error) {
	raw := jsonObject.FindString(reply)
	if raw == "" {
		return foodAnalysis{}, errors.New("no JSON found in response")
	}

	// Pointers tell a missing or non-numeric field apart from 0.
	var check struct {
		Calories *float64 `json:"calories"`
		ProteinG *float64 `json:"protein_g"`
		CarbsG   *float64 `json:"carbs_g"`
		FatG     *float64 `json:"fat_g"`
	}
	if err := json.Unmarshal([]byte(raw), &check); err != nil {
		return foodAnalysis{}, fmt.Errorf("invalid nutrition data: %w", err)
	}
	if check.Calories == nil || check.ProteinG == nil || check.CarbsG == nil || check.FatG == nil {
		return foodAnalysis{}, errors.New("invalid nutrition data: missing calories or macros")
	}

	var result foodAnalysis
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return foodAnalysis{}, fmt.Errorf("invalid nutrition data: %w", err)
	}
	return result, nil
}

/* ─── Handler ────────────────────────────────────────────────────────── */

// analyzeFood estimates nutrition for a free-text food description.
// POST /api/ai/analyze-food.
func (h *Handler) analyzeFood(c *gin.Context) {
	var body struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Description) == "" {
		apiError(c, http.StatusBadRequest, "food description is required")
		return
	}
	if h.ai == nil {
		apiError(c, http.StatusServiceUnavailable, "food analysis is not configured")
		return
	}

	reply, err := h.ai.complete(c.Request.Context(), fmt.Sprintf(foodAnalysisPrompt, strings.TrimSpace(body.Description)))
	if err != nil {
		log.Printf("[analyzeFood] AI error: %v", err)
		apiError(c, http.StatusInternalServerError, "Failed to analyze food. Please try again or enter values manually.")
		return
	}

	result, err := parseFoodAnalysis(reply)
	if err != nil {
		log.Printf("[analyzeFood] parse error: %v", err)
		apiError(c, http.StatusInternalServerError, "Failed to analyze food. Please try again or enter values manually.")
		return
	}
	apiOK(c, http.StatusOK, result)
}
