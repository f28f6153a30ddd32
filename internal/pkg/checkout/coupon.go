package checkout

import (
	"time"

	"github.com/FelixBraun92/PawPantry/app/models"
)

// ComputeDiscount validates a coupon against the validity window, usage cap
// and product restriction, then computes the discount for the given amount.
// Validation order: window, cap, restriction. The restriction is only
// enforced when the caller names the products being bought; an empty id set
// bypasses it, so a standalone check without a cart still gets a discount.
// The result is clamped to the amount so a coupon can never drive a total
// negative.
func ComputeDiscount(coupon *models.Coupon, amount float64, productIDs []uint, asOf time.Time) (float64, error) {
	day := asOf.Truncate(24 * time.Hour)
	if coupon.ValidFrom != nil && day.Before(coupon.ValidFrom.Truncate(24*time.Hour)) {
		return 0, ErrCouponNotYetValid
	}
	if coupon.ValidTo != nil && day.After(coupon.ValidTo.Truncate(24*time.Hour)) {
		return 0, ErrCouponExpired
	}
	if coupon.Exhausted() {
		return 0, ErrCouponExhausted
	}
	if len(productIDs) > 0 && !coupon.AppliesTo(productIDs) {
		return 0, ErrCouponNotApplicable
	}

	discount := coupon.DiscountValue
	if coupon.DiscountType == models.DiscountPercent {
		discount = amount * (coupon.DiscountValue / 100.0)
	}
	if discount > amount {
		discount = amount
	}
	return discount, nil
}
