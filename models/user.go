package models

import "time"

type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusPaid    PaymentStatus = "paid"
)

// User is a registered student.
type User struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email"`
	HostelRoom    string        `json:"hostelRoom"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Amount        int           `json:"amount"`
	Timestamp     *time.Time    `json:"timestamp"` // nil until paid
}

func (u User) IsPaid() bool { return u.PaymentStatus == StatusPaid }
