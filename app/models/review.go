package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProductID  uint      `gorm:"index;not null" json:"product_id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	IsApproved bool      `gorm:"default:false" json:"is_approved"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Review) Validate() error {
	v := validator.New()

	return v.Struct(r)
}
