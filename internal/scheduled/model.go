package scheduled

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/employee"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/apperror"
	"github.com/nekogravitycat/office-seat-booking/internal/seat"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, apperror.KindNotFound, "scheduled seat not found or invalid id")
	ErrInvalidRange  = apperror.New(http.StatusBadRequest, apperror.KindInvalidRange, "End date cannot be before start date")
	ErrPastDate      = apperror.New(http.StatusBadRequest, apperror.KindPastDate, "Start date cannot be in the past")
	ErrSeatTaken     = apperror.New(http.StatusConflict, apperror.KindSeatTaken, "Seat is already scheduled for this time")
	ErrInvalidRepeat = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "repeat_every must be a positive number of days")
	ErrDatesRequired = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "start and end date are required")

	// ErrEmployeeDoubleBooked matches every double booking error regardless of
	// the seat number in its message. Use it with errors.Is only.
	ErrEmployeeDoubleBooked = apperror.OfKind(apperror.KindEmployeeDoubleBooked)
)

func employeeDoubleBooked(seatNumber int) error {
	return apperror.New(http.StatusConflict, apperror.KindEmployeeDoubleBooked,
		fmt.Sprintf("Employee already has a seat for this time (%d)", seatNumber))
}

// Reservation books one seat for one employee over a closed range of days.
type Reservation struct {
	ID         string
	SeatID     string
	SeatNumber int
	EmployeeID string
	// Employee summary, filled by reads.
	EmployeeEmail     string
	EmployeeFirstName string
	EmployeeLastName  string
	StartDate         time.Time
	EndDate           time.Time
	// RepeatEvery is a recurrence hint in days. It is only consulted by ActiveOn.
	RepeatEvery *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Reservation) Period() Period {
	return NewPeriod(r.StartDate, r.EndDate)
}

// ActiveOn reports whether the employee sits at the seat on day d. With a
// repeat interval the original span recurs every RepeatEvery days after it
// starts.
func (r *Reservation) ActiveOn(d time.Time) bool {
	p := r.Period()
	d = Day(d)
	if p.Contains(d) {
		return true
	}
	if r.RepeatEvery == nil || *r.RepeatEvery <= 0 || d.Before(p.Start) {
		return false
	}
	return daysBetween(p.Start, d)%*r.RepeatEvery <= p.Span()
}

// WriteRequest carries the fields of a create or update.
type WriteRequest struct {
	Seat        seat.Criteria
	Employee    employee.Criteria
	StartDate   time.Time
	EndDate     time.Time
	RepeatEvery *int
}

// Criteria is the sparse filter of a reservation search. Zero values are unset.
type Criteria struct {
	ID                string
	SeatID            string
	SeatNumber        int
	EmployeeID        string
	EmployeeEmail     string
	EmployeeFirstName string
	EmployeeLastName  string
	StartDate         *time.Time
	EndDate           *time.Time
}
