package http

import (
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/employee"
	employeehttp "github.com/nekogravitycat/office-seat-booking/internal/employee/http"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
	"github.com/nekogravitycat/office-seat-booking/internal/scheduled"
	"github.com/nekogravitycat/office-seat-booking/internal/seat"
)

// FindScheduledRequest is the sparse search filter. The first set field, in
// declaration order, selects the lookup. Ids are not format checked, a
// malformed one resolves to nothing.
type FindScheduledRequest struct {
	ID                string `form:"id"`
	Seat              string `form:"seat"`
	SeatNumber        int    `form:"seat_number" binding:"omitempty,min=1"`
	Employee          string `form:"employee"`
	EmployeeEmail     string `form:"employee_email" binding:"omitempty,email"`
	EmployeeFirstName string `form:"employee_first_name"`
	EmployeeLastName  string `form:"employee_last_name"`
	StartDate         string `form:"start_date" binding:"omitempty,isodate"`
	EndDate           string `form:"end_date" binding:"omitempty,isodate"`
}

// Criteria converts the request. Dates were checked by the isodate tag.
func (r FindScheduledRequest) Criteria() scheduled.Criteria {
	c := scheduled.Criteria{
		ID:                r.ID,
		SeatID:            r.Seat,
		SeatNumber:        r.SeatNumber,
		EmployeeID:        r.Employee,
		EmployeeEmail:     r.EmployeeEmail,
		EmployeeFirstName: r.EmployeeFirstName,
		EmployeeLastName:  r.EmployeeLastName,
	}
	if d, err := request.ParseDate(r.StartDate); err == nil {
		c.StartDate = &d
	}
	if d, err := request.ParseDate(r.EndDate); err == nil {
		c.EndDate = &d
	}
	return c
}

// WriteScheduledBody is the body of POST and PUT. Without any employee
// field the reservation is made for the caller.
type WriteScheduledBody struct {
	Seat          string `json:"seat"`
	SeatNumber    int    `json:"seat_number" binding:"omitempty,min=1"`
	Employee      string `json:"employee"`
	EmployeeEmail string `json:"employee_email" binding:"omitempty,email"`
	StartDate     string `json:"start_date" binding:"required,isodate"`
	EndDate       string `json:"end_date" binding:"required,isodate"`
	RepeatEvery   *int   `json:"repeat_every" binding:"omitempty,min=1"`
}

func (b WriteScheduledBody) WriteRequest(callerEmployeeID string) scheduled.WriteRequest {
	start, _ := request.ParseDate(b.StartDate)
	end, _ := request.ParseDate(b.EndDate)

	emp := employee.Criteria{ID: b.Employee, Email: b.EmployeeEmail}
	if emp.IsZero() {
		emp.ID = callerEmployeeID
	}
	return scheduled.WriteRequest{
		Seat:        seat.Criteria{ID: b.Seat, Number: b.SeatNumber},
		Employee:    emp,
		StartDate:   start,
		EndDate:     end,
		RepeatEvery: b.RepeatEvery,
	}
}

type SeatTag struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
}

type ReservationResponse struct {
	ID          string                   `json:"id"`
	Seat        SeatTag                  `json:"seat"`
	Employee    employeehttp.EmployeeTag `json:"employee"`
	StartDate   string                   `json:"start_date"`
	EndDate     string                   `json:"end_date"`
	RepeatEvery *int                     `json:"repeat_every"`
	ActiveToday bool                     `json:"active_today"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func NewReservationResponse(r *scheduled.Reservation, today time.Time) ReservationResponse {
	name := r.EmployeeFirstName
	if r.EmployeeLastName != "" {
		name += " " + r.EmployeeLastName
	}
	return ReservationResponse{
		ID:   r.ID,
		Seat: SeatTag{ID: r.SeatID, Number: r.SeatNumber},
		Employee: employeehttp.EmployeeTag{
			ID:    r.EmployeeID,
			Email: r.EmployeeEmail,
			Name:  name,
		},
		StartDate:   request.FormatDate(r.StartDate),
		EndDate:     request.FormatDate(r.EndDate),
		RepeatEvery: r.RepeatEvery,
		ActiveToday: r.ActiveOn(today),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
