package models

import "time"

type NotificationType string

const (
	NotificationReminder       NotificationType = "reminder"
	NotificationPaymentSuccess NotificationType = "payment_success"
)

// Notification is a simulated SMS. The log is append-only and is only ever
// shown to admins, or in the confirmation modal right after a payment.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Type      NotificationType `json:"type"`
}
