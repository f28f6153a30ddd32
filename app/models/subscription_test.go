package models

import (
	"testing"
	"time"
)

func TestCadenceNextDeliveryFrom(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	if got := CadenceWeekly.NextDeliveryFrom(day); !got.Equal(day.AddDate(0, 0, 7)) {
		t.Fatalf("weekly: got %v", got)
	}
	if got := CadenceMonthly.NextDeliveryFrom(day); !got.Equal(day.AddDate(0, 0, 30)) {
		t.Fatalf("monthly: got %v", got)
	}

	// Month boundaries are plain 30-day arithmetic, not calendar months.
	jan31 := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := CadenceMonthly.NextDeliveryFrom(jan31); !got.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("monthly over boundary: got %v", got)
	}
}

func TestCadenceValid(t *testing.T) {
	if !CadenceWeekly.Valid() || !CadenceMonthly.Valid() {
		t.Fatal("known cadences should be valid")
	}
	if Cadence("daily").Valid() {
		t.Fatal("unknown cadence should be invalid")
	}
}

func TestSubscriptionStatusValid(t *testing.T) {
	for _, s := range []SubscriptionStatus{SubscriptionActive, SubscriptionPaused, SubscriptionCancelled} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if SubscriptionStatus("expired").Valid() {
		t.Fatal("unknown status should be invalid")
	}
}
