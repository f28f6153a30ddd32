package models

import "testing"

func TestCouponExhausted(t *testing.T) {
	if (&Coupon{UsedCount: 1000}).Exhausted() {
		t.Fatal("coupon without a cap never exhausts")
	}

	max := 3
	c := &Coupon{MaxUses: &max, UsedCount: 2}
	if c.Exhausted() {
		t.Fatal("below cap should not be exhausted")
	}
	c.UsedCount = 3
	if !c.Exhausted() {
		t.Fatal("at cap should be exhausted")
	}
}

func TestCouponAppliesTo(t *testing.T) {
	open := &Coupon{}
	if !open.AppliesTo([]uint{1, 2}) || !open.AppliesTo(nil) {
		t.Fatal("empty restriction covers everything")
	}

	restricted := &Coupon{ApplicableProducts: []uint{5, 6}}
	if !restricted.AppliesTo([]uint{1, 6}) {
		t.Fatal("one covered product should suffice")
	}
	if restricted.AppliesTo([]uint{1, 2}) {
		t.Fatal("no covered product should not apply")
	}
}

func TestDiscountTypeValid(t *testing.T) {
	if !DiscountPercent.Valid() || !DiscountFixed.Valid() {
		t.Fatal("known discount types should be valid")
	}
	if DiscountType("bogo").Valid() {
		t.Fatal("unknown discount type should be invalid")
	}
}
