package services

import (
	"context"
	"fmt"

	"github.com/phillip/hostel-fest-payments/metrics"
	"github.com/phillip/hostel-fest-payments/models"
	"github.com/phillip/hostel-fest-payments/navigation"
	"github.com/phillip/hostel-fest-payments/store"
	"github.com/phillip/hostel-fest-payments/toast"
)

// SendReminders logs one reminder per pending student, all stamped with the
// same dispatch time, and saves once. It returns how many were logged; zero
// when nobody is pending.
func (a *App) SendReminders(ctx context.Context) (sent int, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	err = a.guard("Sending reminders", func() error {
		if _, err := a.requireRole(navigation.RoleAdmin); err != nil {
			return err
		}

		var (
			notes []models.Notification
			users = map[int64]models.User{}
		)
		now := a.now()
		err := a.store.Update(func(tx *store.Tx) error {
			ev := tx.Data.EventDetails
			for _, u := range tx.Data.PendingUsers() {
				n := models.Notification{
					ID:        tx.NextNotificationID(),
					UserID:    u.ID,
					Message:   ReminderMessage(u.Name, ev.Fee(), ev.EventName, ev.DeadlineLabel()),
					Timestamp: now,
					Type:      models.NotificationReminder,
				}
				notes = append(notes, n)
				users[u.ID] = u
			}
			tx.Data.Notifications = append(tx.Data.Notifications, notes...)
			return nil
		})
		if err != nil {
			return err
		}

		if len(notes) == 0 {
			a.toasts.Push(toast.Info, "No pending payments to remind")
			return nil
		}

		a.persist(ctx)
		sent = len(notes)
		metrics.RemindersSent.Add(float64(sent))
		a.toasts.Push(toast.Success, fmt.Sprintf("Reminders sent to %d students", sent))
		a.log.Info("reminders dispatched", "count", sent)
		a.deliver(users, notes)
		return nil
	})
	return sent, err
}

// ReminderMessage leaves out the deadline when there is none.
func ReminderMessage(name string, amount int, event, deadline string) string {
	by := ""
	if deadline != "" {
		by = " by " + deadline
	}
	return fmt.Sprintf("Dear %s, reminder: Please pay Rs.%d for %s%s. Pay now to secure your participation.",
		name, amount, event, by)
}
