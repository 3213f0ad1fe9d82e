package config

import (
	"os"
	"path/filepath"
	"testing"

	"lg/fittrack-go-api/internal/metabolic"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadProfile_MissingFileUsesDefaults(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != DefaultProfile() {
		t.Errorf("got %+v, want defaults", p)
	}
}

func TestLoadProfile_PartialOverride(t *testing.T) {
	path := writeProfile(t, `
weight_kg: 80
activity_level: active
goal: lose
calorie_target: 2000
exclude_weekends: true
`)
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.WeightKg != 80 || p.ActivityLevel != metabolic.Active || p.Goal != metabolic.Lose {
		t.Errorf("profile fields not overridden: %+v", p.Profile)
	}
	if p.CalorieTarget != 2000 || !p.ExcludeWeekends {
		t.Errorf("targets not overridden: %+v", p)
	}
	// untouched keys keep their defaults
	if p.HeightCm != 168 || p.ProteinTargetG != 135 || p.TargetBodyFatPct != 15 {
		t.Errorf("defaults lost: %+v", p)
	}
}

func TestLoadProfile_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":       "weight_kg: [",
		"bad level":      "activity_level: couch",
		"bad goal":       "goal: bulk",
		"bad target pct": "target_body_fat_pct: 100",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadProfile(writeProfile(t, body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_EnvAndFallbacks(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "production")
	t.Setenv("AI_PROVIDER", "")

	c := Load()
	if c.Port != "8081" {
		t.Errorf("Port = %q, want 8081", c.Port)
	}
	if !c.IsProduction() {
		t.Error("expected production")
	}
	if c.AIProvider != "gemini" {
		t.Errorf("AIProvider = %q, want gemini fallback", c.AIProvider)
	}
}
