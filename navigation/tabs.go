package navigation

import "fmt"

type Group string

const (
	AdminTabs Group = "admin"
	UserTabs  Group = "user"
)

// TabSet is an ordered group of tabs with exactly one active.
type TabSet struct {
	names  []string
	active map[string]bool
}

// NewTabSet returns a set with the first name active.
func NewTabSet(names ...string) *TabSet {
	t := &TabSet{names: names, active: make(map[string]bool, len(names))}
	t.Reset()
	return t
}

func NewAdminTabs() *TabSet { return NewTabSet("payments", "users", "notifications") }

func NewUserTabs() *TabSet { return NewTabSet("payment", "history") }

// Select deactivates every tab, then activates name.
func (t *TabSet) Select(name string) error {
	if !t.has(name) {
		return fmt.Errorf("unknown tab %q", name)
	}
	for _, n := range t.names {
		t.active[n] = false
	}
	t.active[name] = true
	return nil
}

// Reset activates the first tab.
func (t *TabSet) Reset() {
	if len(t.names) > 0 {
		_ = t.Select(t.names[0])
	}
}

func (t *TabSet) Active() string {
	for _, n := range t.names {
		if t.active[n] {
			return n
		}
	}
	return ""
}

// ActiveCount is the number of tabs marked active. Always 1 for a
// non-empty set.
func (t *TabSet) ActiveCount() int {
	count := 0
	for _, on := range t.active {
		if on {
			count++
		}
	}
	return count
}

func (t *TabSet) Names() []string { return append([]string(nil), t.names...) }

func (t *TabSet) has(name string) bool {
	for _, n := range t.names {
		if n == name {
			return true
		}
	}
	return false
}
