// Package toast is the transient feedback feed. Nothing here is persisted.
package toast

import (
	"sync"
	"time"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 4 * time.Second

// Icon returns the material icon name shown next to a toast of kind k.
func (k Kind) Icon() string {
	switch k {
	case Success:
		return "check_circle"
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

type Toast struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"kind"`
	Icon      string    `json:"icon"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Board holds the toasts that have not expired yet.
type Board struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	nextID int64
	items  []Toast
}

// NewBoard returns a board whose toasts live for ttl. A nil now uses time.Now.
func NewBoard(ttl time.Duration, now func() time.Time) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Board{ttl: ttl, now: now}
}

// Push adds a toast and returns it.
func (b *Board) Push(kind Kind, message string) Toast {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	now := b.now()
	t := Toast{
		ID:        b.nextID,
		Kind:      kind,
		Icon:      kind.Icon(),
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	}
	b.items = append(b.items, t)
	b.pruneLocked(now)
	return t
}

// Active returns the toasts still visible, oldest first.
func (b *Board) Active() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pruneLocked(b.now())
	return append([]Toast{}, b.items...)
}

// Drain returns the visible toasts and clears the board.
func (b *Board) Drain() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pruneLocked(b.now())
	out := b.items
	b.items = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}

// Last returns the most recent visible toast.
func (b *Board) Last() (Toast, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pruneLocked(b.now())
	if len(b.items) == 0 {
		return Toast{}, false
	}
	return b.items[len(b.items)-1], true
}

func (b *Board) pruneLocked(now time.Time) {
	kept := b.items[:0]
	for _, t := range b.items {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	b.items = kept
}
