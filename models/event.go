package models

import "time"

// DeadlineLayout is the on-disk format of EventDetails.Deadline.
const DeadlineLayout = "2006-01-02"

// EventDetails describes the single event fees are collected for.
type EventDetails struct {
	EventName      string `json:"eventName"`
	Description    string `json:"description"`
	Amount         int    `json:"amount"`         // fee per student, rupees
	Deadline       string `json:"deadline"`       // YYYY-MM-DD
	TotalCollected int    `json:"totalCollected"` // cache, recomputed on stats refresh
	TotalRequired  int    `json:"totalRequired"`
}

// DeadlineTime parses Deadline. ok is false when it is empty or malformed.
func (e EventDetails) DeadlineTime() (t time.Time, ok bool) {
	if e.Deadline == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DeadlineLayout, e.Deadline)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DefaultFee is charged when the event details carry no amount.
const DefaultFee = 500

// Fee is what each student pays.
func (e EventDetails) Fee() int {
	if e.Amount > 0 {
		return e.Amount
	}
	return DefaultFee
}

// DeadlineLabel renders the deadline as "February 1, 2025", falling back to
// the raw value when it cannot be parsed.
func (e EventDetails) DeadlineLabel() string {
	t, ok := e.DeadlineTime()
	if !ok {
		return e.Deadline
	}
	return t.Format("January 2, 2006")
}

// AdminCredential is the single admin login, compared in plaintext unless a
// hashing provider is configured.
type AdminCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
