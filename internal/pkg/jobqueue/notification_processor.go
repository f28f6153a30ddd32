package jobqueue

import (
	"fmt"

	"github.com/FelixBraun92/PawPantry/internal/pkg/mail"
)

func (q *Queue) processWelcomeEmailJob(job *Job) error {
	payload, err := WelcomeEmailJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid welcome email payload: %w", err)
	}

	name := payload.FullName
	if name == "" {
		name = "there"
	}
	body := fmt.Sprintf(
		"<h1>Welcome to PawPantry, %s!</h1>"+
			"<p>Your account is ready. Add your pets to get tailored meal suggestions.</p>",
		name,
	)
	return mail.SendMail(payload.Email, "Welcome to PawPantry", body)
}

func (q *Queue) processOrderConfirmationJob(job *Job) error {
	payload, err := OrderConfirmationJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid order confirmation payload: %w", err)
	}

	body := fmt.Sprintf(
		"<h1>Thanks for your order!</h1>"+
			"<p>Order #%d has been received and is awaiting payment.</p>",
		payload.OrderID,
	)
	return mail.SendMail(payload.Email, fmt.Sprintf("Order #%d confirmed", payload.OrderID), body)
}

func (q *Queue) processSubscriptionReminderJob(job *Job) error {
	payload, err := SubscriptionReminderJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid subscription reminder payload: %w", err)
	}

	body := fmt.Sprintf(
		"<h1>Your next delivery is scheduled</h1>"+
			"<p>Subscription #%d delivers next on %s.</p>",
		payload.SubscriptionID, payload.NextDelivery.Format("2 January 2006"),
	)
	return mail.SendMail(payload.Email, "Your PawPantry delivery schedule", body)
}
