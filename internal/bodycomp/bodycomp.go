// Package bodycomp estimates body composition from tape measurements using
// the US Navy method (male formula only) and projects fat loss toward a
// target body-fat percentage at constant lean mass.
package bodycomp

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMeasurement is returned for measurements the Navy formula cannot use.
var ErrInvalidMeasurement = errors.New("invalid measurement")

// DefaultTargetPct is the body-fat percentage FatLossToTarget aims for when
// the caller has no preference.
const DefaultTargetPct = 15.0

const targetRange = "10-15%"

type bucket struct {
	max         float64
	category    string
	description string
}

// categories is ordered by ascending upper bound; the first match wins.
var categories = []bucket{
	{6, "Essential Fat", "Too low - health risk"},
	{13, "Athletes", "Athletic build"},
	{17, "Fitness", "Fit and lean"},
	{24, "Average", "Acceptable range"},
	{100, "Obese", "Above healthy range"},
}

// BodyFatResult is a percentage with its category.
type BodyFatResult struct {
	Percentage  float64 `json:"percentage"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	TargetRange string  `json:"target_range"`
}

// BodyFatNavy returns body-fat percentage to one decimal:
// 86.010*log10(waist-neck) - 70.041*log10(height) + 36.76.
func BodyFatNavy(waistCm, neckCm, heightCm float64) (float64, error) {
	if waistCm <= neckCm {
		return 0, fmt.Errorf("%w: waist must be larger than neck", ErrInvalidMeasurement)
	}
	for _, v := range []float64{waistCm, neckCm, heightCm} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: measurements must be positive numbers", ErrInvalidMeasurement)
		}
	}

	pct := 86.010*math.Log10(waistCm-neckCm) - 70.041*math.Log10(heightCm) + 36.76
	return round1(pct), nil
}

// Category buckets a body-fat percentage. Values above 100 are "Unknown".
func Category(pct float64) BodyFatResult {
	res := BodyFatResult{
		Percentage:  pct,
		Category:    "Unknown",
		Description: "Unable to categorize",
		TargetRange: targetRange,
	}
	for _, b := range categories {
		if pct <= b.max {
			res.Category = b.category
			res.Description = b.description
			break
		}
	}
	return res
}

// LeanMass returns weight minus fat mass, to one decimal.
func LeanMass(weightKg, pct float64) float64 {
	fat := weightKg * (pct / 100)
	return round1(weightKg - fat)
}

// FatMass returns weight times body-fat fraction, to one decimal.
func FatMass(weightKg, pct float64) float64 {
	return round1(weightKg * (pct / 100))
}

// FatLoss is the projection returned by FatLossToTarget, all in kg.
type FatLoss struct {
	CurrentFatMass        float64 `json:"current_fat_mass"`
	TargetFatMass         float64 `json:"target_fat_mass"`
	FatToLose             float64 `json:"fat_to_lose"`
	EstimatedTargetWeight float64 `json:"estimated_target_weight"`
}

// FatLossToTarget holds lean mass constant and solves for the weight at
// targetPct. Each intermediate is rounded to one decimal before it feeds the
// next step. targetPct must lie in (0, 100); SummarizeTo checks this.
func FatLossToTarget(weightKg, currentPct, targetPct float64) FatLoss {
	lean := LeanMass(weightKg, currentPct)
	fat := FatMass(weightKg, currentPct)

	est := round1(lean / (1 - targetPct/100))
	targetFat := round1(est - lean)

	return FatLoss{
		CurrentFatMass:        fat,
		TargetFatMass:         targetFat,
		FatToLose:             round1(fat - targetFat),
		EstimatedTargetWeight: est,
	}
}

// Composition is the full body-composition summary for one measurement.
type Composition struct {
	BodyFatPercentage float64       `json:"body_fat_percentage"`
	Category          BodyFatResult `json:"category"`
	LeanMass          float64       `json:"lean_mass"`
	FatMass           float64       `json:"fat_mass"`
	FatLossToTarget   FatLoss       `json:"fat_loss_to_target"`
}

// Summarize measures body fat and derives masses and a projection to
// DefaultTargetPct.
func Summarize(weightKg, waistCm, neckCm, heightCm float64) (Composition, error) {
	return SummarizeTo(weightKg, waistCm, neckCm, heightCm, DefaultTargetPct)
}

// SummarizeTo is Summarize with an explicit target percentage.
// Weight must be positive and targetPct must lie strictly between 0 and 100.
func SummarizeTo(weightKg, waistCm, neckCm, heightCm, targetPct float64) (Composition, error) {
	if !(weightKg > 0) || math.IsInf(weightKg, 0) {
		return Composition{}, fmt.Errorf("%w: weight must be a positive number", ErrInvalidMeasurement)
	}
	if !(targetPct > 0 && targetPct < 100) {
		return Composition{}, fmt.Errorf("%w: target percentage must be between 0 and 100", ErrInvalidMeasurement)
	}
	pct, err := BodyFatNavy(waistCm, neckCm, heightCm)
	if err != nil {
		return Composition{}, err
	}
	return Composition{
		BodyFatPercentage: pct,
		Category:          Category(pct),
		LeanMass:          LeanMass(weightKg, pct),
		FatMass:           FatMass(weightKg, pct),
		FatLossToTarget:   FatLossToTarget(weightKg, pct, targetPct),
	}, nil
}

func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
