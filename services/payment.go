package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phillip/hostel-fest-payments/metrics"
	"github.com/phillip/hostel-fest-payments/models"
	"github.com/phillip/hostel-fest-payments/navigation"
	"github.com/phillip/hostel-fest-payments/store"
	"github.com/phillip/hostel-fest-payments/toast"
)

type PaymentInput struct {
	Method string `json:"method"`
}

// PaymentOutcome is what SubmitPayment reports back straight away.
type PaymentOutcome struct {
	AlreadyPaid bool   `json:"alreadyPaid"`
	Processing  bool   `json:"processing"`
	Message     string `json:"message"`
}

var errAlreadyFinalized = errors.New("user already paid")

// SubmitPayment starts the simulated payment for the signed-in student.
// A student who already paid gets an informational outcome and nothing
// changes. Otherwise the processing modal opens and the payment is finalized
// after the processing delay; the delay cannot be cancelled and does not
// block other flows.
func (a *App) SubmitPayment(ctx context.Context, in PaymentInput) (out PaymentOutcome, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	err = a.guard("Payment", func() error {
		sess, err := a.requireRole(navigation.RoleUser)
		if err != nil {
			return err
		}
		snap := a.store.Snapshot()
		u := snap.FindUser(sess.Actor.UserID)
		if u == nil {
			return ErrUserNotFound
		}

		if u.IsPaid() {
			a.toasts.Push(toast.Info, "Payment already completed")
			out = PaymentOutcome{AlreadyPaid: true, Message: "Payment already completed"}
			return nil
		}

		method := strings.TrimSpace(in.Method)
		if method == "" {
			a.toasts.Push(toast.Error, "Please select a payment method")
			return ErrPaymentMethodRequired
		}
		if !models.IsPaymentMethod(method) {
			a.toasts.Push(toast.Error, "Please select a payment method")
			return fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, method)
		}

		a.nav.ShowModal(navigation.PaymentProcessing)
		a.schedule(u.ID, method)
		a.log.Info("payment processing", "user_id", u.ID, "method", method, "delay", a.delay)
		out = PaymentOutcome{Processing: true, Message: "Processing payment"}
		return nil
	})
	return out, err
}

func (a *App) schedule(userID int64, method string) {
	a.wg.Add(1)
	time.AfterFunc(a.delay, func() {
		defer a.wg.Done()
		a.finalizePayment(userID, method)
	})
}

// finalizePayment marks the user paid and records the payment and its
// confirmation. It runs under the same lock as every other flow. A persist
// failure is logged and the in-memory change is kept.
func (a *App) finalizePayment(userID int64, method string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx := a.baseCtx
	var (
		payer models.User
		note  models.Notification
	)
	err := a.guard("Payment processing", func() error {
		now := a.now()
		err := a.store.Update(func(tx *store.Tx) error {
			u := tx.Data.FindUser(userID)
			if u == nil {
				return ErrUserNotFound
			}
			if u.IsPaid() {
				return errAlreadyFinalized
			}

			amount := tx.Data.EventDetails.Fee()
			txn := a.nextTransactionID(now)
			paidAt := now
			u.PaymentStatus = models.StatusPaid
			u.Amount = amount
			u.Timestamp = &paidAt

			tx.Data.Payments = append(tx.Data.Payments, models.Payment{
				ID:            tx.NextPaymentID(),
				UserID:        u.ID,
				Amount:        amount,
				PaymentMethod: method,
				Status:        models.PaymentCompleted,
				Timestamp:     now,
				TransactionID: txn,
			})

			note = models.Notification{
				ID:        tx.NextNotificationID(),
				UserID:    u.ID,
				Message:   PaymentSuccessMessage(u.Name, amount, tx.Data.EventDetails.EventName, txn),
				Timestamp: now,
				Type:      models.NotificationPaymentSuccess,
			}
			tx.Data.Notifications = append(tx.Data.Notifications, note)
			payer = *u
			return nil
		})
		if err != nil {
			return err
		}

		a.persist(ctx)
		metrics.PaymentsCompleted.Inc()
		metrics.AmountCollected.Add(float64(payer.Amount))
		a.log.Info("payment completed", "user_id", payer.ID, "method", method, "amount", payer.Amount)

		a.nav.HideModal(navigation.PaymentProcessing)
		if s := a.nav.Session(); s != nil && s.Role == navigation.RoleUser && s.Actor.UserID == payer.ID {
			a.nav.ShowSMS(note.Message)
		}
		a.deliver(map[int64]models.User{payer.ID: payer}, []models.Notification{note})
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, errAlreadyFinalized):
		a.nav.HideModal(navigation.PaymentProcessing)
		a.log.Info("payment already finalized, skipping", "user_id", userID)
	case errors.Is(err, ErrInternal):
		a.nav.HideModal(navigation.PaymentProcessing)
	default:
		a.nav.HideModal(navigation.PaymentProcessing)
		a.toasts.Push(toast.Error, "Payment processing failed. Please try again.")
		a.log.Error("payment processing failed", "user_id", userID, "err", err)
	}
}

// nextTransactionID returns TXN<epoch millis>, bumped past the previous one
// so two payments in the same millisecond never share an id.
func (a *App) nextTransactionID(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= a.lastTxn {
		ms = a.lastTxn + 1
	}
	a.lastTxn = ms
	return fmt.Sprintf("TXN%d", ms)
}

// CloseSMS dismisses the payment confirmation.
func (a *App) CloseSMS() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nav.HideModal(navigation.SMS)
	a.toasts.Push(toast.Success, "Payment completed successfully!")
}

func PaymentSuccessMessage(name string, amount int, event, txn string) string {
	if name == "" {
		name = "User"
	}
	return fmt.Sprintf("Dear %s, your payment of Rs.%d for %s has been received successfully. Transaction ID: %s",
		name, amount, event, txn)
}
