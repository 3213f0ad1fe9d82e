package bodycomp

import (
	"errors"
	"math"
	"testing"
)

func TestBodyFatNavy_Valid(t *testing.T) {
	got, err := BodyFatNavy(85, 38, 168)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 86.010*log10(47) - 70.041*log10(168) + 36.76 = 24.714...
	if got != 24.7 {
		t.Errorf("BodyFatNavy(85, 38, 168) = %v, want 24.7", got)
	}
}

func TestBodyFatNavy_Invalid(t *testing.T) {
	cases := []struct {
		name                string
		waist, neck, height float64
	}{
		{"waist below neck", 30, 38, 168},
		{"waist equals neck", 38, 38, 168},
		{"zero height", 85, 38, 0},
		{"negative neck", 85, -1, 168},
		{"negative height", 85, 38, -168},
		{"NaN height", 85, 38, math.NaN()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BodyFatNavy(tc.waist, tc.neck, tc.height)
			if !errors.Is(err, ErrInvalidMeasurement) {
				t.Errorf("expected ErrInvalidMeasurement, got %v", err)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{5, "Essential Fat"},
		{6, "Essential Fat"},
		{6.1, "Athletes"},
		{13, "Athletes"},
		{15, "Fitness"},
		{20, "Average"},
		{24.7, "Obese"},
		{100, "Obese"},
		{150, "Unknown"},
	}
	for _, tc := range cases {
		got := Category(tc.pct)
		if got.Category != tc.want {
			t.Errorf("Category(%v) = %q, want %q", tc.pct, got.Category, tc.want)
		}
		if got.TargetRange != "10-15%" {
			t.Errorf("Category(%v).TargetRange = %q", tc.pct, got.TargetRange)
		}
		if got.Percentage != tc.pct {
			t.Errorf("Category(%v).Percentage = %v", tc.pct, got.Percentage)
		}
	}

	if d := Category(150).Description; d != "Unable to categorize" {
		t.Errorf("unknown description = %q", d)
	}
}

func TestMasses(t *testing.T) {
	if got := LeanMass(67.7, 24.7); got != 51.0 {
		t.Errorf("LeanMass = %v, want 51.0", got)
	}
	if got := FatMass(67.7, 24.7); got != 16.7 {
		t.Errorf("FatMass = %v, want 16.7", got)
	}
	if got := LeanMass(80, 0); got != 80 {
		t.Errorf("LeanMass at 0%% = %v, want 80", got)
	}
}

// TestFatLossToTarget checks the per-step rounding chain:
// lean 51.0, fat 16.7, est 51.0/0.85 = 60.0, target fat 9.0, to lose 7.7.
func TestFatLossToTarget(t *testing.T) {
	got := FatLossToTarget(67.7, 24.7, DefaultTargetPct)
	want := FatLoss{
		CurrentFatMass:        16.7,
		TargetFatMass:         9.0,
		FatToLose:             7.7,
		EstimatedTargetWeight: 60.0,
	}
	if got != want {
		t.Errorf("FatLossToTarget = %+v, want %+v", got, want)
	}
}

func TestSummarize(t *testing.T) {
	c, err := Summarize(67.7, 85, 38, 168)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.BodyFatPercentage != 24.7 || c.Category.Category != "Obese" {
		t.Errorf("unexpected summary: %+v", c)
	}
	if c.FatLossToTarget.FatToLose != 7.7 {
		t.Errorf("FatToLose = %v, want 7.7", c.FatLossToTarget.FatToLose)
	}

	if _, err := Summarize(67.7, 30, 38, 168); !errors.Is(err, ErrInvalidMeasurement) {
		t.Errorf("expected ErrInvalidMeasurement, got %v", err)
	}
}

func TestSummarizeTo_InvalidWeightOrTarget(t *testing.T) {
	cases := []struct {
		name           string
		weight, target float64
	}{
		{"target 100", 67.7, 100},
		{"target above 100", 67.7, 150},
		{"target zero", 67.7, 0},
		{"negative target", 67.7, -5},
		{"NaN target", 67.7, math.NaN()},
		{"zero weight", 0, 15},
		{"negative weight", -5, 15},
		{"infinite weight", math.Inf(1), 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SummarizeTo(tc.weight, 85, 38, 168, tc.target)
			if !errors.Is(err, ErrInvalidMeasurement) {
				t.Errorf("expected ErrInvalidMeasurement, got %v", err)
			}
		})
	}
}
