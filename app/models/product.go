package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Product struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	Name                  string         `gorm:"type:varchar(255);index" json:"name" validate:"required,min=1,max=255"`
	Slug                  string         `gorm:"uniqueIndex;type:varchar(255)" json:"slug" validate:"required,min=1,max=255"`
	SpeciesTags           []string       `gorm:"serializer:json" json:"species_tags,omitempty"`
	Ingredients           string         `gorm:"type:text" json:"ingredients,omitempty"`
	NutritionalInfo       map[string]any `gorm:"serializer:json" json:"nutritional_info,omitempty"`
	Allergens             []string       `gorm:"serializer:json" json:"allergens,omitempty"`
	RecommendedAge        *int           `json:"recommended_age,omitempty"`
	PortionSize           *float64       `json:"portion_size,omitempty"`
	Price                 float64        `gorm:"index" json:"price" validate:"gte=0"`
	Stock                 int            `gorm:"default:0" json:"stock" validate:"gte=0"`
	SubscriptionAvailable bool           `gorm:"default:false;index" json:"subscription_available"`
	FeedingGuidelines     string         `gorm:"type:text" json:"feeding_guidelines,omitempty"`
	StorageInstructions   string         `gorm:"type:text" json:"storage_instructions,omitempty"`
	Images                []string       `gorm:"serializer:json" json:"images,omitempty"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Product) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// HasSpeciesTag reports whether the product is tagged for the given species.
func (p *Product) HasSpeciesTag(species string) bool {
	for _, tag := range p.SpeciesTags {
		if tag == species {
			return true
		}
	}
	return false
}
