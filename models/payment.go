package models

import "time"

const PaymentCompleted = "completed"

// PaymentMethods lists the methods a student may choose from.
var PaymentMethods = []string{"UPI", "Credit Card", "Debit Card", "Net Banking"}

// IsPaymentMethod reports whether m is one of PaymentMethods.
func IsPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

type Payment struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	Amount        int       `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"` // completed
	Timestamp     time.Time `json:"timestamp"`
	TransactionID string    `json:"transactionId"` // TXN<epoch millis>
}
