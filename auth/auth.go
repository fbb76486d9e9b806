// Package auth decides who may sign in. The flows only see Provider, so the
// plaintext check can be swapped for a hashed one without touching them.
package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/phillip/hostel-fest-payments/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Provider authenticates admins and identifies students. Students have no
// password; they are found by email or phone.
type Provider interface {
	AuthenticateAdmin(stored models.AdminCredential, username, password string) error
	FindStudent(users []models.User, identifier string) (models.User, error)
}

// PlaintextProvider compares the admin password exactly as stored.
type PlaintextProvider struct{}

func (PlaintextProvider) AuthenticateAdmin(stored models.AdminCredential, username, password string) error {
	if username == stored.Username && password == stored.Password {
		return nil
	}
	return ErrInvalidCredentials
}

func (PlaintextProvider) FindStudent(users []models.User, identifier string) (models.User, error) {
	return FindStudent(users, identifier)
}

// BcryptProvider checks the admin password against a bcrypt hash and ignores
// the plaintext password kept in the store.
type BcryptProvider struct {
	Hash []byte
}

func NewBcryptProvider(hash string) (*BcryptProvider, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, err
	}
	return &BcryptProvider{Hash: []byte(hash)}, nil
}

func (p *BcryptProvider) AuthenticateAdmin(stored models.AdminCredential, username, password string) error {
	if subtle.ConstantTimeCompare([]byte(username), []byte(stored.Username)) != 1 {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(p.Hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (p *BcryptProvider) FindStudent(users []models.User, identifier string) (models.User, error) {
	return FindStudent(users, identifier)
}

// HashPassword returns a bcrypt hash suitable for NewBcryptProvider.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// FindStudent returns the first user whose email or phone equals identifier.
func FindStudent(users []models.User, identifier string) (models.User, error) {
	if identifier == "" {
		return models.User{}, ErrUserNotFound
	}
	for _, u := range users {
		if u.Email == identifier || u.Phone == identifier {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}
