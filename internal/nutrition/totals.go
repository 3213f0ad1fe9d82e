// Package nutrition folds logged food entries into nutrient totals and
// progress percentages.
package nutrition

import (
	"math"
	"sort"
	"time"
)

// Energy per gram of each macronutrient.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// Entry is one logged food. Gram fields are nil when the value was never
// logged; they count as zero only when summed.
type Entry struct {
	ID       string
	Calories int
	ProteinG *float64
	CarbsG   *float64
	FatG     *float64
	FiberG   *float64
	LoggedAt time.Time
	MealType string
}

// Totals is the element-wise sum of a window of entries.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Add returns t with e folded in.
func (t Totals) Add(e Entry) Totals {
	t.Calories += float64(e.Calories)
	t.Protein += orZero(e.ProteinG)
	t.Carbs += orZero(e.CarbsG)
	t.Fat += orZero(e.FatG)
	t.Fiber += orZero(e.FiberG)
	return t
}

// Sum folds entries into Totals. An empty slice yields the zero Totals.
func Sum(entries []Entry) Totals {
	var t Totals
	for _, e := range entries {
		t = t.Add(e)
	}
	return t
}

// Targets are the daily goals progress is measured against. A zero target
// reports 0%.
type Targets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Percentages are rounded, uncapped progress figures.
type Percentages struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Fiber    int `json:"fiber"`
}

// Percent returns round(current/target*100), or 0 when target is not positive.
func Percent(current, target float64) int {
	if target <= 0 || math.IsNaN(current) {
		return 0
	}
	return round(current / target * 100)
}

// Progress measures t against targets.
func Progress(t Totals, targets Targets) Percentages {
	return Percentages{
		Calories: Percent(t.Calories, targets.Calories),
		Protein:  Percent(t.Protein, targets.Protein),
		Carbs:    Percent(t.Carbs, targets.Carbs),
		Fat:      Percent(t.Fat, targets.Fat),
		Fiber:    Percent(t.Fiber, targets.Fiber),
	}
}

// MacroShare is the percentage of total calories coming from each macro.
type MacroShare struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// EnergyShare splits t.Calories by macro. Zero calories divide by 1 instead,
// so an empty day reads 0/0/0.
func EnergyShare(t Totals) MacroShare {
	cal := t.Calories
	if cal == 0 {
		cal = 1
	}
	return MacroShare{
		Protein: round(t.Protein * KcalPerGramProtein / cal * 100),
		Carbs:   round(t.Carbs * KcalPerGramCarbs / cal * 100),
		Fat:     round(t.Fat * KcalPerGramFat / cal * 100),
	}
}

// DayTotals groups the entries of one calendar day.
type DayTotals struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"-"`
	Totals  Totals  `json:"totals"`
}

// GroupByDay buckets entries by calendar day in loc, newest day first. Entry
// order within a day is preserved.
func GroupByDay(entries []Entry, loc *time.Location) []DayTotals {
	idx := map[string]int{}
	var days []DayTotals
	for _, e := range entries {
		key := e.LoggedAt.In(loc).Format(time.DateOnly)
		i, ok := idx[key]
		if !ok {
			i = len(days)
			idx[key] = i
			days = append(days, DayTotals{Date: key})
		}
		days[i].Entries = append(days[i].Entries, e)
		days[i].Totals = days[i].Totals.Add(e)
	}
	sort.SliceStable(days, func(a, b int) bool { return days[a].Date > days[b].Date })
	return days
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
