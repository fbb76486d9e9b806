package services

import (
	"errors"

	"github.com/phillip/hostel-fest-payments/auth"
)

// Validation failures. The flow is aborted and nothing changes.
var (
	ErrMissingField          = errors.New("all fields are required")
	ErrDuplicateUser         = errors.New("user with this email or phone already exists")
	ErrInvalidCredentials    = auth.ErrInvalidCredentials
	ErrUserNotFound          = auth.ErrUserNotFound
	ErrUnknownRole           = errors.New("unknown role")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrUnknownPaymentMethod  = errors.New("unknown payment method")
	ErrNotSignedIn           = errors.New("not signed in")
	ErrForbidden             = errors.New("not allowed for this role")
	ErrBackupDisabled        = errors.New("backups are not configured")
)

// ErrInternal is returned when a flow panicked. The panic is logged and the
// session carries on.
var ErrInternal = errors.New("internal error")

// IsValidation reports whether err is one of the validation failures above.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrMissingField, ErrDuplicateUser, ErrInvalidCredentials, ErrUserNotFound,
		ErrUnknownRole, ErrPaymentMethodRequired, ErrUnknownPaymentMethod,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
