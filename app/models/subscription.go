package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Cadence is the renewal interval of a subscription.
type Cadence string

const (
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

func (c Cadence) Valid() bool {
	return c == CadenceWeekly || c == CadenceMonthly
}

// NextDeliveryFrom computes the next delivery date measured from the given
// day: +7 days for weekly, +30 days for monthly.
func (c Cadence) NextDeliveryFrom(day time.Time) time.Time {
	if c == CadenceWeekly {
		return day.AddDate(0, 0, 7)
	}
	return day.AddDate(0, 0, 30)
}

// SubscriptionStatus is the closed set of subscription states.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPaused    SubscriptionStatus = "paused"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionPaused, SubscriptionCancelled:
		return true
	}
	return false
}

type Subscription struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	UserID            uint               `gorm:"index;not null" json:"user_id"`
	PetID             uint               `gorm:"index;not null" json:"pet_id"`
	ProductID         uint               `gorm:"index;not null" json:"product_id"`
	Quantity          int                `gorm:"default:1" json:"quantity" validate:"gt=0"`
	Cadence           Cadence            `gorm:"type:varchar(32);default:'monthly'" json:"cadence" validate:"oneof=weekly monthly"`
	NextDeliveryDate  *time.Time         `gorm:"type:date;default:null" json:"next_delivery_date,omitempty"`
	Status            SubscriptionStatus `gorm:"type:varchar(32);default:'active';index" json:"status"`
	TrialEndsAt       *time.Time         `gorm:"type:date;default:null" json:"trial_ends_at,omitempty"`
	BillingMethod     string             `gorm:"type:varchar(32);default:null" json:"billing_method,omitempty"`
	LastPaymentStatus string             `gorm:"type:varchar(32);default:null" json:"last_payment_status,omitempty"`
}

func (s *Subscription) Validate() error {
	v := validator.New()

	return v.Struct(s)
}
