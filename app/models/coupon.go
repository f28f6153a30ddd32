package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DiscountType is the closed set of coupon discount modes.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

func (d DiscountType) Valid() bool {
	return d == DiscountPercent || d == DiscountFixed
}

type Coupon struct {
	ID                 uint         `gorm:"primaryKey" json:"id"`
	Code               string       `gorm:"uniqueIndex;type:varchar(64)" json:"code" validate:"required,min=1,max=64"`
	DiscountType       DiscountType `gorm:"type:varchar(16)" json:"discount_type" validate:"oneof=percent fixed"`
	DiscountValue      float64      `json:"discount_value" validate:"gte=0"`
	ValidFrom          *time.Time   `gorm:"type:date;default:null" json:"valid_from,omitempty"`
	ValidTo            *time.Time   `gorm:"type:date;default:null" json:"valid_to,omitempty"`
	MaxUses            *int         `json:"max_uses,omitempty" validate:"omitempty,gt=0"`
	UsedCount          int          `gorm:"default:0" json:"used_count"`
	ApplicableProducts []uint       `gorm:"serializer:json" json:"applicable_products,omitempty"`
	NewUserOnly        bool         `gorm:"default:false" json:"new_user_only"`
}

func (c *Coupon) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

// Exhausted reports whether the usage cap has been reached. Coupons without
// a cap never exhaust.
func (c *Coupon) Exhausted() bool {
	return c.MaxUses != nil && c.UsedCount >= *c.MaxUses
}

// AppliesTo reports whether at least one of the given product ids is covered
// by the coupon's product restriction. An empty restriction covers everything.
func (c *Coupon) AppliesTo(productIDs []uint) bool {
	if len(c.ApplicableProducts) == 0 {
		return true
	}
	for _, pid := range productIDs {
		for _, allowed := range c.ApplicableProducts {
			if pid == allowed {
				return true
			}
		}
	}
	return false
}
