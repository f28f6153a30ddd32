package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FelixBraun92/PawPantry/app/models"
)

func TestCouponValidation_KnownCode(t *testing.T) {
	coupon := &models.Coupon{
		ID: 3, Code: "SPRING",
		DiscountType: models.DiscountPercent, DiscountValue: 10,
	}

	got := couponValidation("SPRING", coupon)
	assert.Equal(t, "SPRING", got["code"])
	assert.Equal(t, true, got["valid"])
	assert.Equal(t, 10.0, got["discount_value"])
	assert.Equal(t, models.DiscountPercent, got["discount_type"])
}

func TestCouponValidation_UnknownCode(t *testing.T) {
	got := couponValidation("NOPE", nil)
	assert.Equal(t, "NOPE", got["code"])
	assert.Equal(t, false, got["valid"])
	assert.Nil(t, got["discount_value"])
	assert.Nil(t, got["discount_type"])
}
