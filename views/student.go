package views

import (
	"fmt"

	"github.com/phillip/hostel-fest-payments/models"
)

// StatusPanel is the student's payment status card. Paid and pending are
// mutually exclusive; a paid student no longer sees the payment form.
type StatusPanel struct {
	Paid            bool        `json:"paid"`
	Class           string      `json:"class"`
	Icon            string      `json:"icon"`
	Title           string      `json:"title"`
	Message         string      `json:"message"`
	ShowPaymentForm bool        `json:"showPaymentForm"`
	FormNotice      *EmptyState `json:"formNotice,omitempty"`
}

func PaymentStatus(u models.User, ev models.EventDetails) StatusPanel {
	if u.IsPaid() {
		return StatusPanel{
			Paid:    true,
			Class:   "status-paid",
			Icon:    "check_circle",
			Title:   "Payment Completed",
			Message: fmt.Sprintf("You have successfully paid %s on %s", FormatRupees(u.Amount), FormatDate(u.Timestamp)),
			FormNotice: &EmptyState{
				Icon:    "check_circle",
				Title:   "Payment Already Completed",
				Message: "Thank you for your payment!",
			},
		}
	}
	msg := "Please complete your payment of " + FormatRupees(ev.Fee())
	if deadline := ev.DeadlineLabel(); deadline != "" {
		msg += " by " + deadline
	}
	return StatusPanel{
		Class:           "status-pending",
		Icon:            "pending",
		Title:           "Payment Pending",
		Message:         msg,
		ShowPaymentForm: true,
	}
}

type HistoryRow struct {
	PaymentID     int64  `json:"paymentId"`
	Title         string `json:"title"`
	Method        string `json:"method"`
	At            string `json:"at"`
	TransactionID string `json:"transactionId"`
	Amount        int    `json:"amount"`
	AmountLabel   string `json:"amountLabel"`
}

type PaymentHistory struct {
	Rows  []HistoryRow `json:"rows"`
	Empty *EmptyState  `json:"empty,omitempty"`
}

// History lists userID's payments in the order they were recorded.
func History(d models.AppData, userID int64) PaymentHistory {
	h := PaymentHistory{Rows: []HistoryRow{}}
	for _, p := range d.Payments {
		if p.UserID != userID {
			continue
		}
		ts := p.Timestamp
		h.Rows = append(h.Rows, HistoryRow{
			PaymentID:     p.ID,
			Title:         "Payment for " + d.EventDetails.EventName,
			Method:        p.PaymentMethod,
			At:            FormatDate(&ts),
			TransactionID: p.TransactionID,
			Amount:        p.Amount,
			AmountLabel:   FormatRupees(p.Amount),
		})
	}
	if len(h.Rows) == 0 {
		h.Empty = &EmptyState{Icon: "history", Message: "No payment history available"}
	}
	return h
}

func Welcome(u models.User) string {
	return "Welcome, " + u.Name
}

type UserDashboard struct {
	Welcome        string              `json:"welcome"`
	Event          models.EventDetails `json:"event"`
	Status         StatusPanel         `json:"status"`
	History        PaymentHistory      `json:"history"`
	PaymentMethods []string            `json:"paymentMethods"`
}

// User builds the dashboard for userID. ok is false if no such user exists.
func User(d models.AppData, userID int64) (UserDashboard, bool) {
	u := d.FindUser(userID)
	if u == nil {
		return UserDashboard{}, false
	}
	return UserDashboard{
		Welcome:        Welcome(*u),
		Event:          d.EventDetails,
		Status:         PaymentStatus(*u, d.EventDetails),
		History:        History(d, userID),
		PaymentMethods: append([]string(nil), models.PaymentMethods...),
	}, true
}
