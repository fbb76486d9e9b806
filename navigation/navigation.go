// Package navigation tracks which page, tabs and modals are showing and who
// is signed in. It holds no store data.
package navigation

import (
	"fmt"
	"sync"
)

type View string

const (
	Landing        View = "landing"
	Login          View = "login"
	Register       View = "register"
	AdminDashboard View = "admin-dashboard"
	UserDashboard  View = "user-dashboard"
)

var views = []View{Landing, Login, Register, AdminDashboard, UserDashboard}

// ParseView accepts the names above.
func ParseView(s string) (View, error) {
	for _, v := range views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}

type Role string

const (
	RoleNone  Role = ""
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

type Modal string

const (
	PaymentProcessing Modal = "payment-processing"
	SMS               Modal = "sms"
)

// Actor is whoever is signed in. UserID is zero for the admin.
type Actor struct {
	UserID   int64  `json:"userId,omitempty"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
}

// Session is at most one actor plus its role.
type Session struct {
	ID    string `json:"id"`
	Actor Actor  `json:"actor"`
	Role  Role   `json:"role"`
}

// State is a copy of the controller's state for rendering.
type State struct {
	View      View             `json:"view"`
	LoginRole Role             `json:"loginRole"`
	Session   *Session         `json:"session"`
	Tabs      map[Group]string `json:"tabs"`
	Modals    []Modal          `json:"modals"`
	SMSText   string           `json:"smsText,omitempty"`
}

// Controller is the page/tab/modal state machine. It starts on the landing
// page with nobody signed in.
type Controller struct {
	mu        sync.Mutex
	view      View
	loginRole Role
	session   *Session
	tabs      map[Group]*TabSet
	modals    map[Modal]bool
	smsText   string
}

func NewController() *Controller {
	return &Controller{
		view:   Landing,
		tabs:   map[Group]*TabSet{AdminTabs: NewAdminTabs(), UserTabs: NewUserTabs()},
		modals: map[Modal]bool{},
	}
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Session returns a copy of the active session, or nil.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// ShowLanding returns to the landing page and clears the session and any
// open modals.
func (c *Controller) ShowLanding() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = Landing
	c.session = nil
	c.loginRole = RoleNone
	c.modals = map[Modal]bool{}
	c.smsText = ""
}

// ShowLogin opens the login page for role.
func (c *Controller) ShowLogin(role Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loginRole = role
	c.view = Login
}

func (c *Controller) LoginRole() Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginRole
}

func (c *Controller) ShowRegister() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = Register
}

// SignIn makes s the active session, replacing any previous one.
func (c *Controller) SignIn(s Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = &s
	c.loginRole = s.Role
}

// ShowDashboard opens the dashboard for the session's role and resets its
// tabs to the default. Without a session it goes to the landing page.
func (c *Controller) ShowDashboard() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.session == nil:
		c.view = Landing
	case c.session.Role == RoleAdmin:
		c.view = AdminDashboard
		c.tabs[AdminTabs].Reset()
	default:
		c.view = UserDashboard
		c.tabs[UserTabs].Reset()
	}
	return c.view
}

// Logout clears the session and returns to the landing page. It never fails.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.loginRole = RoleNone
	c.view = Landing
	c.modals = map[Modal]bool{}
	c.smsText = ""
}

// SelectTab activates tab within group.
func (c *Controller) SelectTab(group Group, tab string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.tabs[group]
	if !ok {
		return fmt.Errorf("unknown tab group %q", group)
	}
	return set.Select(tab)
}

// ActiveTab returns the selected tab of group.
func (c *Controller) ActiveTab(group Group) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.tabs[group]; ok {
		return set.Active()
	}
	return ""
}

func (c *Controller) ShowModal(m Modal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modals[m] = true
}

// ShowSMS opens the confirmation modal with text.
func (c *Controller) ShowSMS(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.smsText = text
	c.modals[SMS] = true
}

func (c *Controller) HideModal(m Modal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.modals, m)
	if m == SMS {
		c.smsText = ""
	}
}

func (c *Controller) ModalVisible(m Modal) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modals[m]
}

// State returns a copy of everything above.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		View:      c.view,
		LoginRole: c.loginRole,
		Tabs:      make(map[Group]string, len(c.tabs)),
		Modals:    []Modal{},
		SMSText:   c.smsText,
	}
	if c.session != nil {
		s := *c.session
		st.Session = &s
	}
	for g, set := range c.tabs {
		st.Tabs[g] = set.Active()
	}
	for _, m := range []Modal{PaymentProcessing, SMS} {
		if c.modals[m] {
			st.Modals = append(st.Modals, m)
		}
	}
	return st
}
