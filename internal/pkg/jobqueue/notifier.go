package jobqueue

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Notifier enqueues customer notifications as background jobs. Every method
// is fire and forget: enqueue failures are logged and swallowed so a dead
// Redis never blocks a signup or a checkout.
type Notifier struct {
	queue *Queue
}

// NewNotifier creates a notifier backed by the global queue manager.
func NewNotifier() *Notifier {
	return &Notifier{queue: GetManager().GetQueue()}
}

// Welcome enqueues the signup welcome email.
func (n *Notifier) Welcome(email, fullName string) {
	payload := WelcomeEmailJobPayload{Email: email, FullName: fullName}
	if _, err := n.queue.EnqueueJob(JobTypeWelcomeEmail, payload.ToMap()); err != nil {
		log.Errorf("[Notifier] Failed to enqueue welcome email for %s: %v", email, err)
	}
}

// OrderConfirmation enqueues the order confirmation email.
func (n *Notifier) OrderConfirmation(email string, orderID uint) {
	payload := OrderConfirmationJobPayload{Email: email, OrderID: orderID}
	if _, err := n.queue.EnqueueJob(JobTypeOrderConfirmation, payload.ToMap()); err != nil {
		log.Errorf("[Notifier] Failed to enqueue order confirmation for order %d: %v", orderID, err)
	}
}

// SubscriptionReminder enqueues the next-delivery reminder email.
func (n *Notifier) SubscriptionReminder(email string, subscriptionID uint, nextDelivery time.Time) {
	payload := SubscriptionReminderJobPayload{
		Email:          email,
		SubscriptionID: subscriptionID,
		NextDelivery:   nextDelivery,
	}
	if _, err := n.queue.EnqueueJob(JobTypeSubscriptionReminder, payload.ToMap()); err != nil {
		log.Errorf("[Notifier] Failed to enqueue reminder for subscription %d: %v", subscriptionID, err)
	}
}
