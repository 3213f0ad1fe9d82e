package main

import "testing"

func TestValidateProfilePatch(t *testing.T) {
	cases := []struct {
		name    string
		body    patchProfileRequest
		wantErr bool
	}{
		{"empty", patchProfileRequest{}, false},
		{"valid level and goal", patchProfileRequest{ActivityLevel: ptr("very_active"), Goal: ptr("gain")}, false},
		{"unknown level", patchProfileRequest{ActivityLevel: ptr("extreme")}, true},
		{"unknown goal", patchProfileRequest{Goal: ptr("cut")}, true},
		{"zero weight", patchProfileRequest{WeightKg: ptr(0.0)}, true},
		{"huge height", patchProfileRequest{HeightCm: ptr(400.0)}, true},
		{"zero age", patchProfileRequest{Age: ptr(0)}, true},
		{"negative water", patchProfileRequest{WaterGoalML: ptr(-1)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateProfilePatch(tc.body)
			if (err != nil) != tc.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestProfileSetClauses(t *testing.T) {
	set, args := profileSetClauses(patchProfileRequest{WeightKg: ptr(70.5), Goal: ptr("lose")})

	if len(set) != 2 || set[0] != "weight_kg = @weightKg" || set[1] != "goal = @goal" {
		t.Errorf("set clauses = %v", set)
	}
	if args["weightKg"] != 70.5 || args["goal"] != "lose" {
		t.Errorf("args = %v", args)
	}

	if set, _ := profileSetClauses(patchProfileRequest{}); len(set) != 0 {
		t.Errorf("empty patch should produce no clauses, got %v", set)
	}
}
