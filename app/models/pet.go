package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Pet struct {
	ID                   uint     `gorm:"primaryKey" json:"id"`
	UserID               uint     `gorm:"index;not null" json:"user_id"`
	Name                 string   `gorm:"type:varchar(120)" json:"name" validate:"required,min=1,max=120"`
	Species              string   `gorm:"type:varchar(64)" json:"species" validate:"required,max=64"`
	Breed                string   `gorm:"type:varchar(120);default:null" json:"breed" validate:"max=120"`
	Age                  *int     `json:"age,omitempty" validate:"omitempty,gte=0"`
	Weight               *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Allergies            []string `gorm:"serializer:json" json:"allergies,omitempty"`
	PreferredIngredients []string `gorm:"serializer:json" json:"preferred_ingredients,omitempty"`
	ActivityLevel        string   `gorm:"type:varchar(64);default:null" json:"activity_level" validate:"omitempty,oneof=low medium high"`
	HealthConditions     []string `gorm:"serializer:json" json:"health_conditions,omitempty"`
	PhotoURL             string   `gorm:"type:varchar(255);default:null" json:"photo_url" validate:"max=255"`
}

func (p *Pet) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// PortionSuggestion is a derived feeding recommendation, not persisted.
type PortionSuggestion struct {
	Portion  string `json:"portion"`
	MealType string `json:"meal_type"`
}

// SuggestPortion derives a daily portion from body weight and activity level.
// Base ration is 2.5% of body weight, shifted half a point up or down for
// high/low activity. Pets without a recorded weight get no concrete portion.
func (p *Pet) SuggestPortion() PortionSuggestion {
	if p.Weight == nil || *p.Weight <= 0 {
		return PortionSuggestion{Portion: "N/A", MealType: "balanced"}
	}

	base := 2.5
	switch p.ActivityLevel {
	case "high":
		base += 0.5
	case "low":
		base -= 0.5
	}

	portionKg := Round2(*p.Weight * (base / 100.0))
	mealType := "balanced"
	if p.ActivityLevel == "high" {
		mealType = "high-protein"
	}

	return PortionSuggestion{
		Portion:  fmt.Sprintf("%v kg/day", portionKg),
		MealType: mealType,
	}
}
