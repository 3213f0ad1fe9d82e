// Package metabolic computes energy-expenditure figures (Mifflin-St Jeor BMR,
// TDEE, goal-adjusted calorie targets, protein targets and macro splits).
// Every function is pure; the multiplier tables are private and never mutated.
package metabolic

import (
	"errors"
	"fmt"
	"math"
)

// ActivityLevel is one of the five TDEE activity buckets.
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very_active"
)

// Goal selects the calorie adjustment applied on top of TDEE.
type Goal string

const (
	Lose     Goal = "lose"
	Maintain Goal = "maintain"
	Gain     Goal = "gain"
	Recomp   Goal = "recomp"
)

// ErrUnknownActivityLevel is returned by TDEE for a level outside the table.
var ErrUnknownActivityLevel = errors.New("unknown activity level")

// activityMultipliers maps activity levels to their TDEE multiplier.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,   // little or no exercise
	Light:      1.375, // 1-3 days/week
	Moderate:   1.55,  // 3-5 days/week
	Active:     1.725, // 6-7 days/week
	VeryActive: 1.9,   // hard training or physical job
}

var goalFactors = map[Goal]float64{
	Lose:     0.8,
	Maintain: 1.0,
	Gain:     1.1,
	Recomp:   0.9,
}

// onTargetBand is the +/- kcal window that still counts as hitting the target.
const onTargetBand = 100

// ValidActivityLevel reports whether s names a known activity level.
func ValidActivityLevel(s string) bool {
	_, ok := activityMultipliers[ActivityLevel(s)]
	return ok
}

// ValidGoal reports whether s names a known goal.
func ValidGoal(s string) bool {
	_, ok := goalFactors[Goal(s)]
	return ok
}

// BMR returns the male Mifflin-St Jeor basal metabolic rate:
// 10*weight + 6.25*height - 5*age + 5.
func BMR(weightKg, heightCm float64, age int) int {
	return round(10*weightKg + 6.25*heightCm - 5*float64(age) + 5)
}

// TDEE scales a BMR by the activity multiplier.
func TDEE(bmr int, level ActivityLevel) (int, error) {
	mult, ok := activityMultipliers[level]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownActivityLevel, level)
	}
	return round(float64(bmr) * mult), nil
}

// TargetCalories applies the goal's deficit or surplus to tdee. An unknown
// goal leaves tdee unchanged.
func TargetCalories(tdee int, goal Goal) int {
	switch goal {
	case Maintain:
		return tdee
	case Lose, Gain, Recomp:
		return round(float64(tdee) * goalFactors[goal])
	default:
		return tdee
	}
}

// ProteinTarget returns grams of protein per day: 2.0 g/kg when building
// (gain, recomp), 1.6 g/kg otherwise.
func ProteinTarget(weightKg float64, goal Goal) int {
	mult := 1.6
	if goal == Gain || goal == Recomp {
		mult = 2.0
	}
	return round(weightKg * mult)
}

// MacroSplit is a daily macro breakdown in grams.
type MacroSplit struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// Macros splits totalCalories around a fixed protein target. Fat takes 35% of
// the non-protein calories; carbs take the rest. Carbs are derived from the
// unrounded fat calories, so fat*9 + carbs*4 can drift a gram or two from the
// total.
func Macros(totalCalories, proteinG int) MacroSplit {
	proteinCal := float64(proteinG * 4)
	remaining := float64(totalCalories) - proteinCal
	fatCal := remaining * 0.35
	carbCal := float64(totalCalories) - proteinCal - fatCal
	return MacroSplit{
		Protein: proteinG,
		Carbs:   round(carbCal / 4),
		Fat:     round(fatCal / 9),
	}
}

// Status classifies intake against a calorie target.
type Status string

const (
	StatusDeficit  Status = "deficit"
	StatusSurplus  Status = "surplus"
	StatusOnTarget Status = "on_target"
)

// DeficitResult compares consumed calories with a target.
type DeficitResult struct {
	Difference int    `json:"difference"`
	Status     Status `json:"status"`
	Percentage int    `json:"percentage"`
}

// Deficit reports consumed-target and whether that lands inside the
// on-target band. Percentage is 0 for a zero target.
func Deficit(consumed, target int) DeficitResult {
	diff := consumed - target

	pct := 0
	if target != 0 {
		pct = round(float64(consumed) / float64(target) * 100)
	}

	status := StatusSurplus
	switch {
	case diff >= -onTargetBand && diff <= onTargetBand:
		status = StatusOnTarget
	case diff < 0:
		status = StatusDeficit
	}

	return DeficitResult{Difference: diff, Status: status, Percentage: pct}
}

// DaysToGoal estimates days to move from current to goal weight at
// weeklyChangeKg per week (negative for loss). ok is false when the rate is
// zero, points away from the goal, or is too small to give a representable
// day count.
func DaysToGoal(current, goal, weeklyChangeKg float64) (days int, ok bool) {
	if weeklyChangeKg == 0 {
		return 0, false
	}
	weeks := (goal - current) / weeklyChangeKg
	if !(weeks >= 0) || weeks*7 > math.MaxInt32 {
		return 0, false
	}
	return round(weeks * 7), true
}

// round matches the half-up rounding the figures were calibrated against
// (math.Round rounds -0.5 away from zero).
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
