package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of notification job
type JobType string

const (
	JobTypeWelcomeEmail         JobType = "welcome_email"
	JobTypeOrderConfirmation    JobType = "order_confirmation"
	JobTypeSubscriptionReminder JobType = "subscription_reminder"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job represents a queued notification. Delivery is at most once: a job
// that fails is recorded as failed and never re-enqueued.
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
}

// WelcomeEmailJobPayload contains the payload for welcome emails
type WelcomeEmailJobPayload struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// ToMap converts the payload to a map for storage
func (p WelcomeEmailJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"email":     p.Email,
		"full_name": p.FullName,
	}
}

// WelcomeEmailJobPayloadFromMap creates a payload from a map
func WelcomeEmailJobPayloadFromMap(data map[string]interface{}) (*WelcomeEmailJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload WelcomeEmailJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// OrderConfirmationJobPayload contains the payload for order confirmations
type OrderConfirmationJobPayload struct {
	Email   string `json:"email"`
	OrderID uint   `json:"order_id"`
}

// ToMap converts the payload to a map for storage
func (p OrderConfirmationJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"email":    p.Email,
		"order_id": p.OrderID,
	}
}

// OrderConfirmationJobPayloadFromMap creates a payload from a map
func OrderConfirmationJobPayloadFromMap(data map[string]interface{}) (*OrderConfirmationJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload OrderConfirmationJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// SubscriptionReminderJobPayload contains the payload for delivery reminders
type SubscriptionReminderJobPayload struct {
	Email          string    `json:"email"`
	SubscriptionID uint      `json:"subscription_id"`
	NextDelivery   time.Time `json:"next_delivery"`
}

// ToMap converts the payload to a map for storage
func (p SubscriptionReminderJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"email":           p.Email,
		"subscription_id": p.SubscriptionID,
		"next_delivery":   p.NextDelivery.Format(time.RFC3339),
	}
}

// SubscriptionReminderJobPayloadFromMap creates a payload from a map
func SubscriptionReminderJobPayloadFromMap(data map[string]interface{}) (*SubscriptionReminderJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload SubscriptionReminderJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
}
