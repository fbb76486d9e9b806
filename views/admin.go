// Package views projects store snapshots into what the dashboards show.
// Nothing in here mutates its input.
package views

import (
	"fmt"
	"time"

	"github.com/phillip/hostel-fest-payments/models"
)

type EmptyState struct {
	Icon    string `json:"icon"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

type AdminStats struct {
	TotalCollected      int     `json:"totalCollected"`
	TotalCollectedLabel string  `json:"totalCollectedLabel"`
	TotalRequired       int     `json:"totalRequired"`
	TotalUsers          int     `json:"totalUsers"`
	PaidUsers           int     `json:"paidUsers"`
	PendingUsers        int     `json:"pendingUsers"`
	ProgressPercent     float64 `json:"progressPercent"`
}

// Stats derives the collection totals from the users, ignoring the cached
// eventDetails.totalCollected.
func Stats(d models.AppData) AdminStats {
	paid := len(d.PaidUsers())
	collected := d.CollectedTotal()
	st := AdminStats{
		TotalCollected:      collected,
		TotalCollectedLabel: FormatRupees(collected),
		TotalRequired:       d.EventDetails.TotalRequired,
		TotalUsers:          len(d.Users),
		PaidUsers:           paid,
		PendingUsers:        len(d.Users) - paid,
	}
	if st.TotalRequired > 0 {
		st.ProgressPercent = float64(collected) * 100 / float64(st.TotalRequired)
	}
	return st
}

type PaymentRow struct {
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
	Room        string `json:"room"`
	PaidAt      string `json:"paidAt"`
	Amount      int    `json:"amount"`
	AmountLabel string `json:"amountLabel"`
}

type PaymentsList struct {
	Rows  []PaymentRow `json:"rows"`
	Empty *EmptyState  `json:"empty,omitempty"`
}

// Payments lists every paid user.
func Payments(d models.AppData) PaymentsList {
	list := PaymentsList{Rows: []PaymentRow{}}
	for _, u := range d.PaidUsers() {
		list.Rows = append(list.Rows, PaymentRow{
			UserID:      u.ID,
			Name:        u.Name,
			Room:        u.HostelRoom,
			PaidAt:      FormatDate(u.Timestamp),
			Amount:      u.Amount,
			AmountLabel: FormatRupees(u.Amount),
		})
	}
	if len(list.Rows) == 0 {
		list.Empty = &EmptyState{Icon: "payment", Message: "No payments received yet"}
	}
	return list
}

type UserRow struct {
	ID     int64                `json:"id"`
	Name   string               `json:"name"`
	Room   string               `json:"room"`
	Phone  string               `json:"phone"`
	Status models.PaymentStatus `json:"status"`
	Tag    string               `json:"tag"` // success | warning
	Icon   string               `json:"icon"`
	Label  string               `json:"label"`
}

// Users lists every registered user tagged with their payment status.
func Users(d models.AppData) []UserRow {
	rows := make([]UserRow, 0, len(d.Users))
	for _, u := range d.Users {
		row := UserRow{
			ID:     u.ID,
			Name:   u.Name,
			Room:   u.HostelRoom,
			Phone:  u.Phone,
			Status: u.PaymentStatus,
			Tag:    "warning",
			Icon:   "pending",
			Label:  "Pending",
		}
		if u.IsPaid() {
			row.Tag, row.Icon, row.Label = "success", "check_circle", "Paid"
		}
		rows = append(rows, row)
	}
	return rows
}

type LogEntry struct {
	Timestamp time.Time               `json:"timestamp"`
	At        string                  `json:"at"`
	Type      models.NotificationType `json:"type"`
	Count     int                     `json:"count"`
	Text      string                  `json:"text"`
}

// NotificationLog summarises the notification log newest first. Reminders
// sent in one dispatch share a timestamp and collapse into one entry.
func NotificationLog(d models.AppData) []LogEntry {
	names := make(map[int64]string, len(d.Users))
	for _, u := range d.Users {
		names[u.ID] = u.Name
	}

	var entries []LogEntry
	for _, n := range d.Notifications {
		last := len(entries) - 1
		if n.Type == models.NotificationReminder && last >= 0 &&
			entries[last].Type == models.NotificationReminder && entries[last].Timestamp.Equal(n.Timestamp) {
			entries[last].Count++
			continue
		}
		entries = append(entries, LogEntry{Timestamp: n.Timestamp, Type: n.Type, Count: 1})
		if n.Type == models.NotificationPaymentSuccess {
			name := names[n.UserID]
			if name == "" {
				name = "User"
			}
			entries[len(entries)-1].Text = fmt.Sprintf("Payment confirmation sent to %s", name)
		}
	}

	out := make([]LogEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		ts := e.Timestamp
		e.At = FormatDate(&ts)
		if e.Type == models.NotificationReminder {
			e.Text = fmt.Sprintf("Sent payment reminders to %d students", e.Count)
		}
		out = append(out, e)
	}
	return out
}

type AdminDashboard struct {
	Event         models.EventDetails `json:"event"`
	Stats         AdminStats          `json:"stats"`
	Payments      PaymentsList        `json:"payments"`
	Users         []UserRow           `json:"users"`
	Notifications []LogEntry          `json:"notifications"`
}

func Admin(d models.AppData) AdminDashboard {
	return AdminDashboard{
		Event:         d.EventDetails,
		Stats:         Stats(d),
		Payments:      Payments(d),
		Users:         Users(d),
		Notifications: NotificationLog(d),
	}
}
