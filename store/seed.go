package store

import (
	"time"

	"github.com/phillip/hostel-fest-payments/models"
)

// DefaultKey is the document key the store is persisted under.
const DefaultKey = "hostelPaymentData"

func seedTime(month time.Month, day, hour, min int) *time.Time {
	t := time.Date(2025, month, day, hour, min, 0, 0, time.UTC)
	return &t
}

// Seed returns the built-in data the persisted document is merged over.
func Seed() models.AppData {
	return models.AppData{
		Users: []models.User{
			{ID: 1, Name: "Rajesh Kumar", Phone: "9876543210", Email: "rajesh@example.com", HostelRoom: "A-101", PaymentStatus: models.StatusPaid, Amount: 500, Timestamp: seedTime(time.January, 15, 10, 30)},
			{ID: 2, Name: "Priya Sharma", Phone: "9876543211", Email: "priya@example.com", HostelRoom: "B-205", PaymentStatus: models.StatusPending},
			{ID: 3, Name: "Amit Singh", Phone: "9876543212", Email: "amit@example.com", HostelRoom: "C-304", PaymentStatus: models.StatusPaid, Amount: 500, Timestamp: seedTime(time.January, 16, 14, 20)},
		},
		EventDetails: models.EventDetails{
			EventName:      "Annual Hostel Cultural Fest",
			Description:    "Join us for an amazing cultural festival with performances, food stalls, and games",
			Amount:         500,
			Deadline:       "2025-02-01",
			TotalCollected: 1000,
			TotalRequired:  25000,
		},
		AdminCredentials: models.AdminCredential{Username: "admin", Password: "admin123"},
		Payments: []models.Payment{
			{ID: 1, UserID: 1, Amount: 500, PaymentMethod: "UPI", Status: models.PaymentCompleted, Timestamp: *seedTime(time.January, 15, 10, 30), TransactionID: "TXN001"},
			{ID: 2, UserID: 3, Amount: 500, PaymentMethod: "Credit Card", Status: models.PaymentCompleted, Timestamp: *seedTime(time.January, 16, 14, 20), TransactionID: "TXN002"},
		},
		Notifications: []models.Notification{},
	}
}
