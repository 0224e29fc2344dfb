package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, apperror.KindNotFound, "user not found")
	ErrAlreadyRegistered  = apperror.New(http.StatusConflict, apperror.KindAlreadyExists, "employee already has an account")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, apperror.KindUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, apperror.KindForbidden, "user is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "password must be at least 8 characters")
	ErrNotAnEmployee      = apperror.New(http.StatusForbidden, apperror.KindForbidden, "email does not belong to a known employee")
	ErrNameMismatch       = apperror.New(http.StatusForbidden, apperror.KindForbidden, "name does not match the employee record")
)

// User is a login account. Every user is bound to exactly one employee,
// whose email and names it reports.
type User struct {
	ID           string
	EmployeeID   string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// RegisterRequest carries the fields a new account is created from.
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}
