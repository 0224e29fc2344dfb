package employee

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, apperror.KindNotFound, "employee not found")
	ErrAmbiguous        = apperror.New(http.StatusConflict, apperror.KindAmbiguous, "more than one employee matches, narrow the criteria")
	ErrNoCriteria       = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "no employee identifying field given")
	ErrEmailAlreadyUsed = apperror.New(http.StatusConflict, apperror.KindAlreadyExists, "employee email already used")
	ErrEmailRequired    = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "email is required")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "first and last name are required")
)

// Employee is a person who can hold seat reservations.
type Employee struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName joins first and last name.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Criteria identifies an employee by id or natural key. Empty fields are unset.
type Criteria struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// IsZero reports whether no identifying field is set.
func (c Criteria) IsZero() bool {
	return c.ID == "" && c.Email == "" && c.FirstName == "" && c.LastName == ""
}
