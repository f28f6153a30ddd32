package controllers

import (
	"sync"

	"github.com/FelixBraun92/PawPantry/internal/pkg/checkout"
	"github.com/FelixBraun92/PawPantry/internal/pkg/database"
	"github.com/FelixBraun92/PawPantry/internal/pkg/env"
	"github.com/FelixBraun92/PawPantry/internal/pkg/jobqueue"
	"github.com/FelixBraun92/PawPantry/internal/pkg/payment"
	"github.com/FelixBraun92/PawPantry/internal/pkg/subscriptions"
)

var (
	checkoutService     *checkout.Service
	subscriptionService *subscriptions.Service
	paymentService      *payment.Service
	servicesOnce        sync.Once
)

// InitializeServices wires the domain services onto the global DB handle.
// Called once from application startup, after the database is up.
func InitializeServices() {
	servicesOnce.Do(func() {
		db := database.GetDB()
		notifier := jobqueue.NewNotifier()

		checkoutService = checkout.NewServiceFromDB(db, notifier)
		subscriptionService = subscriptions.NewServiceFromDB(db, notifier)
		paymentService = payment.NewServiceFromDB(
			db,
			env.GetEnv("PAYMENT_GATEWAY_URL", "https://pay.example.com"),
			env.GetEnv("PAYMENT_WEBHOOK_SECRET", ""),
		)
	})
}
