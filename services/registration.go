package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/phillip/hostel-fest-payments/metrics"
	"github.com/phillip/hostel-fest-payments/models"
	"github.com/phillip/hostel-fest-payments/navigation"
	"github.com/phillip/hostel-fest-payments/store"
	"github.com/phillip/hostel-fest-payments/toast"
)

type RegisterInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Room  string `json:"room"`
}

func (in RegisterInput) trimmed() RegisterInput {
	return RegisterInput{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: strings.TrimSpace(in.Phone),
		Room:  strings.TrimSpace(in.Room),
	}
}

// Register adds a pending student, signs them in and opens their dashboard.
// A student sharing the email or the phone of an existing one is rejected.
func (a *App) Register(ctx context.Context, in RegisterInput) (user models.User, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	err = a.guard("Registration", func() error {
		in = in.trimmed()
		if in.Name == "" || in.Email == "" || in.Phone == "" || in.Room == "" {
			a.toasts.Push(toast.Error, "Please fill in all fields")
			return ErrMissingField
		}

		err := a.store.Update(func(tx *store.Tx) error {
			for _, u := range tx.Data.Users {
				if u.Email == in.Email || u.Phone == in.Phone {
					return ErrDuplicateUser
				}
			}
			user = models.User{
				ID:            tx.NextUserID(),
				Name:          in.Name,
				Email:         in.Email,
				Phone:         in.Phone,
				HostelRoom:    in.Room,
				PaymentStatus: models.StatusPending,
			}
			tx.Data.Users = append(tx.Data.Users, user)
			return nil
		})
		if err != nil {
			a.toasts.Push(toast.Error, "User with this email or phone already exists")
			return err
		}
		a.persist(ctx)
		metrics.Registrations.Inc()

		a.nav.SignIn(navigation.Session{
			ID:    uuid.NewString(),
			Actor: navigation.Actor{UserID: user.ID, Name: user.Name},
			Role:  navigation.RoleUser,
		})
		a.nav.ShowDashboard()
		a.toasts.Push(toast.Success, "Registration successful!")
		a.log.Info("student registered", "user_id", user.ID, "room", user.HostelRoom)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
