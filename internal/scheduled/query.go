package scheduled

import (
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/employee"
	"github.com/nekogravitycat/office-seat-booking/internal/seat"
)

// QueryKind selects the lookup strategy of a search.
type QueryKind int

const (
	QueryAll QueryKind = iota
	QueryByID
	QueryBySeat
	QueryByEmployee
	QueryByDateRange
)

func (k QueryKind) String() string {
	switch k {
	case QueryByID:
		return "by_id"
	case QueryBySeat:
		return "by_seat"
	case QueryByEmployee:
		return "by_employee"
	case QueryByDateRange:
		return "by_date_range"
	default:
		return "all"
	}
}

// Query is a resolved search: exactly the fields of Kind are meaningful.
type Query struct {
	Kind     QueryKind
	ID       string
	Seat     seat.Criteria
	Employee employee.Criteria
	From     *time.Time
	To       *time.Time
}

// Query picks one strategy from the set fields. The first match wins:
// id, then seat, then employee, then date bounds, then everything.
func (c Criteria) Query() Query {
	switch {
	case c.ID != "":
		return Query{Kind: QueryByID, ID: c.ID}
	case c.SeatID != "" || c.SeatNumber != 0:
		return Query{Kind: QueryBySeat, Seat: seat.Criteria{ID: c.SeatID, Number: c.SeatNumber}}
	case c.EmployeeID != "" || c.EmployeeEmail != "" || c.EmployeeFirstName != "" || c.EmployeeLastName != "":
		return Query{Kind: QueryByEmployee, Employee: employee.Criteria{
			ID:        c.EmployeeID,
			Email:     c.EmployeeEmail,
			FirstName: c.EmployeeFirstName,
			LastName:  c.EmployeeLastName,
		}}
	case c.StartDate != nil || c.EndDate != nil:
		q := Query{Kind: QueryByDateRange}
		if c.StartDate != nil {
			from := Day(*c.StartDate)
			q.From = &from
		}
		if c.EndDate != nil {
			to := Day(*c.EndDate)
			q.To = &to
		}
		return q
	default:
		return Query{Kind: QueryAll}
	}
}
