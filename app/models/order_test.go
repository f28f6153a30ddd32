package models

import "testing"

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderPaid, OrderCancelled, OrderShipped, OrderDelivered} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if OrderStatus("processing").Valid() {
		t.Fatal("unknown status should be invalid")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		terminal bool
	}{
		{OrderPending, false},
		{OrderPaid, false},
		{OrderShipped, false},
		{OrderCancelled, true},
		{OrderDelivered, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Fatalf("%q.Terminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestNormalizePaymentStatus(t *testing.T) {
	tests := []struct {
		in   string
		want PaymentStatus
	}{
		{"unpaid", PaymentUnpaid},
		{"paid", PaymentPaid},
		{"failed", PaymentFailed},
		{"refunded", PaymentRefunded},
		{"settled", PaymentPaid},
		{"", PaymentPaid},
	}
	for _, tt := range tests {
		if got := NormalizePaymentStatus(tt.in); got != tt.want {
			t.Fatalf("NormalizePaymentStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{4.995, 5.0},
		{44.954999, 44.95},
		{0, 0},
		{9.999, 10.0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Fatalf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrderSubtotal(t *testing.T) {
	o := Order{Items: []OrderItem{
		{Quantity: 5, UnitPrice: 9.99},
		{Quantity: 1, UnitPrice: 0.01},
	}}
	if got := o.Subtotal(); got != 49.96 {
		t.Fatalf("Subtotal() = %v, want 49.96", got)
	}
}
