package models

import "testing"

func ptr(v float64) *float64 { return &v }

func TestSuggestPortion(t *testing.T) {
	tests := []struct {
		name     string
		pet      Pet
		portion  string
		mealType string
	}{
		{
			name:     "no weight",
			pet:      Pet{Name: "Mia", Species: "cat"},
			portion:  "N/A",
			mealType: "balanced",
		},
		{
			name:     "medium activity",
			pet:      Pet{Weight: ptr(20), ActivityLevel: "medium"},
			portion:  "0.5 kg/day",
			mealType: "balanced",
		},
		{
			name:     "high activity gets more food and protein",
			pet:      Pet{Weight: ptr(20), ActivityLevel: "high"},
			portion:  "0.6 kg/day",
			mealType: "high-protein",
		},
		{
			name:     "low activity gets less",
			pet:      Pet{Weight: ptr(20), ActivityLevel: "low"},
			portion:  "0.4 kg/day",
			mealType: "balanced",
		},
	}

	for _, tt := range tests {
		got := tt.pet.SuggestPortion()
		if got.Portion != tt.portion || got.MealType != tt.mealType {
			t.Fatalf("%s: got %+v, want portion %q mealType %q", tt.name, got, tt.portion, tt.mealType)
		}
	}
}
