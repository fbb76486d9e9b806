// Package services implements the transaction flows: registration, login,
// payment and reminders. One App owns the store, the navigation state and the
// toast feed, and runs one flow at a time.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/phillip/hostel-fest-payments/auth"
	"github.com/phillip/hostel-fest-payments/metrics"
	"github.com/phillip/hostel-fest-payments/models"
	"github.com/phillip/hostel-fest-payments/navigation"
	"github.com/phillip/hostel-fest-payments/store"
	"github.com/phillip/hostel-fest-payments/toast"
	"github.com/phillip/hostel-fest-payments/utils"
	"github.com/phillip/hostel-fest-payments/views"
)

const (
	// DefaultPaymentDelay stands in for the gateway confirming a payment.
	DefaultPaymentDelay = 3 * time.Second
	// DefaultFee is charged when the event details carry no fee.
	DefaultFee = models.DefaultFee
)

// Backuper uploads copies of the store document.
type Backuper interface {
	Upload(ctx context.Context, key string, data []byte) (utils.Backup, error)
	Delete(ctx context.Context, publicID string) error
}

// Options configures New. Zero values pick the defaults noted per field.
type Options struct {
	Store        *store.Store
	Auth         auth.Provider // defaults to PlaintextProvider
	Nav          *navigation.Controller
	Toasts       *toast.Board
	Sender       utils.Sender  // defaults to LogSender
	Backup       Backuper      // nil disables backups
	PaymentDelay time.Duration // defaults to DefaultPaymentDelay; negative means none
	Now          func() time.Time
	Log          *slog.Logger
}

// App is the single controller instance. Every exported flow takes mu, so
// flows and the payment timer never interleave.
type App struct {
	mu sync.Mutex
	wg sync.WaitGroup

	store  *store.Store
	auth   auth.Provider
	nav    *navigation.Controller
	toasts *toast.Board
	sender utils.Sender
	backup Backuper
	delay  time.Duration
	now    func() time.Time
	log    *slog.Logger

	baseCtx    context.Context
	lastTxn    int64
	lastBackup *utils.Backup
}

// New builds an App from opts. A nil Store gets an in-memory store holding
// the seed data.
func New(opts Options) *App {
	a := &App{
		store:   opts.Store,
		auth:    opts.Auth,
		nav:     opts.Nav,
		toasts:  opts.Toasts,
		sender:  opts.Sender,
		backup:  opts.Backup,
		delay:   opts.PaymentDelay,
		now:     opts.Now,
		log:     opts.Log,
		baseCtx: context.Background(),
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	if a.store == nil {
		a.store = store.New(store.NewMemoryPersister(), "", a.log)
	}
	if a.auth == nil {
		a.auth = auth.PlaintextProvider{}
	}
	if a.nav == nil {
		a.nav = navigation.NewController()
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.toasts == nil {
		a.toasts = toast.NewBoard(toast.DefaultTTL, a.now)
	}
	if a.sender == nil {
		a.sender = utils.LogSender{Log: a.log}
	}
	switch {
	case a.delay == 0:
		a.delay = DefaultPaymentDelay
	case a.delay < 0:
		a.delay = 0
	}
	return a
}

func (a *App) Store() *store.Store               { return a.store }
func (a *App) Toasts() *toast.Board              { return a.toasts }
func (a *App) Navigation() *navigation.Controller { return a.nav }

// State is the navigation state for rendering.
func (a *App) State() navigation.State { return a.nav.State() }

// Session returns the active session, or nil.
func (a *App) Session() *navigation.Session { return a.nav.Session() }

// Snapshot returns a copy of the store.
func (a *App) Snapshot() models.AppData { return a.store.Snapshot() }

// Wait blocks until scheduled payments and notification deliveries finish.
func (a *App) Wait() { a.wg.Wait() }

// guard runs fn, converting a panic into ErrInternal with a generic toast.
func (a *App) guard(action string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error(action+" panicked", "panic", r, "stack", string(debug.Stack()))
			a.toasts.Push(toast.Error, action+" failed. Please try again.")
			err = fmt.Errorf("%s: %w", action, ErrInternal)
		}
	}()
	return fn()
}

// persist saves the store. A failure is logged and swallowed: the in-memory
// change stands and the next successful save catches the copy up.
func (a *App) persist(ctx context.Context) {
	if err := a.store.Save(ctx); err != nil {
		metrics.SaveFailures.Inc()
		a.log.Error("error saving data", "err", err)
	}
}

// deliver hands notifications to the sender off the flow's critical path.
func (a *App) deliver(users map[int64]models.User, notes []models.Notification) {
	if len(notes) == 0 {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for _, n := range notes {
			if err := a.sender.Send(a.baseCtx, users[n.UserID], n); err != nil {
				a.log.Warn("notification delivery failed", "user_id", n.UserID, "type", n.Type, "err", err)
			}
		}
	}()
}

// requireRole returns the session if it has role.
func (a *App) requireRole(role navigation.Role) (*navigation.Session, error) {
	s := a.nav.Session()
	if s == nil {
		return nil, ErrNotSignedIn
	}
	if s.Role != role {
		return nil, ErrForbidden
	}
	return s, nil
}

// CurrentUser returns the signed-in student as stored now.
func (a *App) CurrentUser() (models.User, error) {
	s, err := a.requireRole(navigation.RoleUser)
	if err != nil {
		return models.User{}, err
	}
	snap := a.store.Snapshot()
	u := snap.FindUser(s.Actor.UserID)
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}

// UserDashboard renders the signed-in student's dashboard.
func (a *App) UserDashboard() (views.UserDashboard, error) {
	s, err := a.requireRole(navigation.RoleUser)
	if err != nil {
		return views.UserDashboard{}, err
	}
	dash, ok := views.User(a.store.Snapshot(), s.Actor.UserID)
	if !ok {
		return views.UserDashboard{}, ErrUserNotFound
	}
	return dash, nil
}
