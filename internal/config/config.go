package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"lg/fittrack-go-api/internal/metabolic"
)

type Config struct {
	DBURL          string
	Port           string
	SessionSecret  string
	AppEnv         string
	AllowedOrigins string
	AIProvider     string // "gemini" or "openai"
	GeminiAPIKey   string
	GeminiModel    string
	GeminiBaseURL  string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	ProfileFile    string
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	return &Config{
		DBURL:          getEnv("DB_URL", ""),
		Port:           getEnv("PORT", "3000"),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		AppEnv:         getEnv("APP_ENV", "development"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		AIProvider:     getEnv("AI_PROVIDER", "gemini"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:  getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		ProfileFile:    getEnv("PROFILE_FILE", "profile.yaml"),
	}
}

// IsProduction reports whether cookies should be marked Secure.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

/* ─── Profile defaults ───────────────────────────────────────────────── */

// ProfileDefaults seeds a new user and fills targets the user never set.
type ProfileDefaults struct {
	metabolic.Profile `yaml:",inline"`

	CalorieTarget    int     `yaml:"calorie_target"`
	ProteinTargetG   int     `yaml:"protein_target_g"`
	FiberTargetG     int     `yaml:"fiber_target_g"`
	WaterGoalML      int     `yaml:"water_goal_ml"`
	TargetBodyFatPct float64 `yaml:"target_body_fat_pct"`
	ExcludeWeekends  bool    `yaml:"exclude_weekends"`
}

// DefaultProfile is used when no profile file exists.
func DefaultProfile() ProfileDefaults {
	return ProfileDefaults{
		Profile: metabolic.Profile{
			WeightKg:      67.7,
			HeightCm:      168,
			Age:           23,
			ActivityLevel: metabolic.Moderate,
			Goal:          metabolic.Recomp,
		},
		CalorieTarget:    2200,
		ProteinTargetG:   135,
		FiberTargetG:     30,
		WaterGoalML:      3000,
		TargetBodyFatPct: 15,
	}
}

// LoadProfile overlays the YAML file at path onto DefaultProfile. A missing
// file is not an error.
func LoadProfile(path string) (ProfileDefaults, error) {
	p := DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("read profile file: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile file %s: %w", path, err)
	}
	if !metabolic.ValidActivityLevel(string(p.ActivityLevel)) {
		return p, fmt.Errorf("profile file %s: unknown activity_level %q", path, p.ActivityLevel)
	}
	if !metabolic.ValidGoal(string(p.Goal)) {
		return p, fmt.Errorf("profile file %s: unknown goal %q", path, p.Goal)
	}
	if p.TargetBodyFatPct <= 0 || p.TargetBodyFatPct >= 100 {
		return p, fmt.Errorf("profile file %s: target_body_fat_pct must be between 0 and 100", path)
	}
	return p, nil
}
