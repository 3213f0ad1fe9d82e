package metabolic

// Profile is the body and lifestyle input for Stats.
type Profile struct {
	WeightKg      float64       `json:"weight_kg" yaml:"weight_kg"`
	HeightCm      float64       `json:"height_cm" yaml:"height_cm"`
	Age           int           `json:"age" yaml:"age"`
	ActivityLevel ActivityLevel `json:"activity_level" yaml:"activity_level"`
	Goal          Goal          `json:"goal" yaml:"goal"`
}

// UserStats is the full chain of derived daily targets for a profile.
type UserStats struct {
	BMR            int        `json:"bmr"`
	TDEE           int        `json:"tdee"`
	TargetCalories int        `json:"target_calories"`
	ProteinTarget  int        `json:"protein_target"`
	Macros         MacroSplit `json:"macros"`
}

// Stats runs BMR -> TDEE -> target calories -> protein -> macros for p.
func Stats(p Profile) (UserStats, error) {
	bmr := BMR(p.WeightKg, p.HeightCm, p.Age)
	tdee, err := TDEE(bmr, p.ActivityLevel)
	if err != nil {
		return UserStats{}, err
	}
	target := TargetCalories(tdee, p.Goal)
	protein := ProteinTarget(p.WeightKg, p.Goal)

	return UserStats{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: target,
		ProteinTarget:  protein,
		Macros:         Macros(target, protein),
	}, nil
}
