package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/phillip/hostel-fest-payments/metrics"
	"github.com/phillip/hostel-fest-payments/navigation"
	"github.com/phillip/hostel-fest-payments/toast"
)

type LoginInput struct {
	Role       string `json:"role"`
	Identifier string `json:"identifier"` // admin username, or student email/phone
	Password   string `json:"password"`
}

// ShowLanding returns to the landing page and forgets the session.
func (a *App) ShowLanding() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nav.ShowLanding()
}

// ShowLogin opens the login page for role.
func (a *App) ShowLogin(role navigation.Role) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nav.ShowLogin(role)
}

func (a *App) ShowRegister() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nav.ShowRegister()
}

// ShowDashboard opens the dashboard for the signed-in role. The admin
// dashboard refreshes the collected total first.
func (a *App) ShowDashboard(ctx context.Context) navigation.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.showDashboardLocked(ctx)
}

func (a *App) showDashboardLocked(ctx context.Context) navigation.View {
	v := a.nav.ShowDashboard()
	if v == navigation.AdminDashboard {
		a.refreshStatsLocked(ctx)
	}
	return v
}

// SelectTab switches the active tab of group.
func (a *App) SelectTab(group navigation.Group, tab string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nav.SelectTab(group, tab)
}

// Login signs in an admin by username and password, or a student by email
// or phone. An empty role uses the role the login page was opened for.
// Failures leave the login page as it was.
func (a *App) Login(ctx context.Context, in LoginInput) (sess navigation.Session, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	err = a.guard("Login", func() error {
		role := a.nav.LoginRole()
		if in.Role != "" {
			r, err := navigation.ParseRole(in.Role)
			if err != nil {
				return fmt.Errorf("%w: %q", ErrUnknownRole, in.Role)
			}
			role = r
		}
		if role == navigation.RoleNone {
			role = navigation.RoleUser
		}

		snap := a.store.Snapshot()
		switch role {
		case navigation.RoleAdmin:
			if err := a.auth.AuthenticateAdmin(snap.AdminCredentials, in.Identifier, in.Password); err != nil {
				metrics.Logins.WithLabelValues("admin", "failure").Inc()
				a.toasts.Push(toast.Error, "Invalid admin credentials")
				return err
			}
			sess = navigation.Session{
				ID:    uuid.NewString(),
				Actor: navigation.Actor{Username: in.Identifier, Name: in.Identifier},
				Role:  navigation.RoleAdmin,
			}
		default:
			u, err := a.auth.FindStudent(snap.Users, in.Identifier)
			if err != nil {
				metrics.Logins.WithLabelValues("user", "failure").Inc()
				a.toasts.Push(toast.Error, "User not found. Please register first.")
				return err
			}
			sess = navigation.Session{
				ID:    uuid.NewString(),
				Actor: navigation.Actor{UserID: u.ID, Name: u.Name},
				Role:  navigation.RoleUser,
			}
		}

		a.nav.SignIn(sess)
		a.showDashboardLocked(ctx)
		metrics.Logins.WithLabelValues(string(sess.Role), "success").Inc()
		if sess.Role == navigation.RoleAdmin {
			a.toasts.Push(toast.Success, "Admin login successful")
		} else {
			a.toasts.Push(toast.Success, fmt.Sprintf("Welcome back, %s!", sess.Actor.Name))
		}
		return nil
	})
	if err != nil {
		return navigation.Session{}, err
	}
	return sess, nil
}

// Logout clears the session and returns to the landing page.
func (a *App) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nav.Logout()
	a.toasts.Push(toast.Info, "Logged out successfully")
}
