package scheduled

import (
	"context"
	"log/slog"
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/employee"
	"github.com/nekogravitycat/office-seat-booking/internal/logging"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
	"github.com/nekogravitycat/office-seat-booking/internal/seat"
)

// SeatFinder resolves seat criteria to one seat.
type SeatFinder interface {
	FindSeat(ctx context.Context, c seat.Criteria) (*seat.Seat, error)
}

// EmployeeFinder resolves employee criteria to one employee.
type EmployeeFinder interface {
	FindEmployee(ctx context.Context, c employee.Criteria) (*employee.Employee, error)
}

type Service interface {
	// Create books a seat after checking the date range, the seat and the employee.
	Create(ctx context.Context, req WriteRequest) (*Reservation, error)
	// Update re-runs every Create check against the other reservations and
	// replaces the reservation in place.
	Update(ctx context.Context, id string, req WriteRequest) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	// Find dispatches on the first set criteria field, see Criteria.Query.
	Find(ctx context.Context, c Criteria) ([]*Reservation, error)
	Delete(ctx context.Context, id string) error
	// Today is the current calendar day in the configured location.
	Today() time.Time
}

type service struct {
	repo      Repository
	seats     SeatFinder
	employees EmployeeFinder
	clock     Clock
	location  *time.Location
}

// NewService wires the scheduler. A nil clock reads the system clock; a nil
// location means UTC.
func NewService(repo Repository, seats SeatFinder, employees EmployeeFinder, clock Clock, location *time.Location) Service {
	if clock == nil {
		clock = SystemClock
	}
	if location == nil {
		location = time.UTC
	}
	return &service{
		repo:      repo,
		seats:     seats,
		employees: employees,
		clock:     clock,
		location:  location,
	}
}

func (s *service) Today() time.Time {
	return Today(s.clock, s.location)
}

// draft accumulates what each write step resolves.
type draft struct {
	id       string // empty on create
	req      WriteRequest
	period   Period
	seat     *seat.Seat
	employee *employee.Employee
}

// step is one fallible stage of a write. Steps run in order and the first
// error stops the pipeline.
type step func(ctx context.Context, d *draft) error

func runSteps(ctx context.Context, d *draft, steps ...step) error {
	for _, st := range steps {
		if err := st(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req WriteRequest) (*Reservation, error) {
	d := &draft{req: req}
	err := runSteps(ctx, d,
		s.validateDates,
		s.resolveSeat,
		s.checkSeatFree,
		s.resolveEmployee,
		s.checkEmployeeFree,
	)
	if err != nil {
		s.logRejected(ctx, "create", d, err)
		return nil, err
	}

	r := d.reservation()
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("seat scheduled", reservationAttrs(r)...)
	return r, nil
}

func (s *service) Update(ctx context.Context, id string, req WriteRequest) (*Reservation, error) {
	d := &draft{id: id, req: req}
	err := runSteps(ctx, d,
		s.loadTarget,
		s.validateDates,
		s.resolveSeat,
		s.checkSeatFree,
		s.resolveEmployee,
		s.checkEmployeeFree,
	)
	if err != nil {
		s.logRejected(ctx, "update", d, err)
		return nil, err
	}

	r := d.reservation()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("scheduled seat updated", reservationAttrs(r)...)
	return r, nil
}

// loadTarget fails with ErrNotFound before any other check when the
// reservation being updated does not exist.
func (s *service) loadTarget(ctx context.Context, d *draft) error {
	_, err := s.repo.GetByID(ctx, d.id)
	return err
}

func (s *service) validateDates(_ context.Context, d *draft) error {
	if d.req.StartDate.IsZero() || d.req.EndDate.IsZero() {
		return ErrDatesRequired
	}
	if d.req.RepeatEvery != nil && *d.req.RepeatEvery <= 0 {
		return ErrInvalidRepeat
	}

	d.period = NewPeriod(d.req.StartDate, d.req.EndDate)
	if !d.period.Valid() {
		return ErrInvalidRange
	}
	if d.period.Start.Before(s.Today()) {
		return ErrPastDate
	}
	return nil
}

func (s *service) resolveSeat(ctx context.Context, d *draft) error {
	st, err := s.seats.FindSeat(ctx, d.req.Seat)
	if err != nil {
		return err
	}
	d.seat = st
	return nil
}

func (s *service) checkSeatFree(ctx context.Context, d *draft) error {
	taken, err := s.isSeatScheduled(ctx, d.seat.ID, d.period, d.id)
	if err != nil {
		return err
	}
	if taken {
		return ErrSeatTaken
	}
	return nil
}

func (s *service) resolveEmployee(ctx context.Context, d *draft) error {
	e, err := s.employees.FindEmployee(ctx, d.req.Employee)
	if err != nil {
		return err
	}
	d.employee = e
	return nil
}

// checkEmployeeFree rejects a second seat for the same employee on a shared
// day. On update the reservation itself is excluded. Any other overlap on the
// same seat was already refused by checkSeatFree.
func (s *service) checkEmployeeFree(ctx context.Context, d *draft) error {
	conflict, err := s.employeeSeat(ctx, d.employee.ID, d.period, d.id)
	if err != nil {
		return err
	}
	if conflict == nil {
		return nil
	}
	return employeeDoubleBooked(conflict.SeatNumber)
}

func (d *draft) reservation() *Reservation {
	return &Reservation{
		ID:                d.id,
		SeatID:            d.seat.ID,
		SeatNumber:        d.seat.Number,
		EmployeeID:        d.employee.ID,
		EmployeeEmail:     d.employee.Email,
		EmployeeFirstName: d.employee.FirstName,
		EmployeeLastName:  d.employee.LastName,
		StartDate:         d.period.Start,
		EndDate:           d.period.End,
		RepeatEvery:       d.req.RepeatEvery,
	}
}

func (s *service) logRejected(ctx context.Context, op string, d *draft, err error) {
	attrs := []any{slog.String("op", op), slog.String("reason", err.Error())}
	if d.id != "" {
		attrs = append(attrs, slog.String("scheduled_seat_id", d.id))
	}
	if d.seat != nil {
		attrs = append(attrs, slog.String("seat_id", d.seat.ID), slog.Int("seat_number", d.seat.Number))
	}
	if d.employee != nil {
		attrs = append(attrs, slog.String("employee_id", d.employee.ID))
	}
	if !d.period.Start.IsZero() {
		attrs = append(attrs,
			slog.String("start_date", request.FormatDate(d.period.Start)),
			slog.String("end_date", request.FormatDate(d.period.End)))
	}
	logging.FromContext(ctx).Warn("scheduling rejected", attrs...)
}

func reservationAttrs(r *Reservation) []any {
	return []any{
		slog.String("scheduled_seat_id", r.ID),
		slog.String("seat_id", r.SeatID),
		slog.Int("seat_number", r.SeatNumber),
		slog.String("employee_id", r.EmployeeID),
		slog.String("start_date", request.FormatDate(r.StartDate)),
		slog.String("end_date", request.FormatDate(r.EndDate)),
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Find(ctx context.Context, c Criteria) ([]*Reservation, error) {
	q := c.Query()
	logging.FromContext(ctx).Debug("find scheduled seats", slog.String("query", q.Kind.String()))

	switch q.Kind {
	case QueryByID:
		r, err := s.repo.GetByID(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		return []*Reservation{r}, nil
	case QueryBySeat:
		st, err := s.seats.FindSeat(ctx, q.Seat)
		if err != nil {
			return nil, err
		}
		return s.repo.ListBySeat(ctx, st.ID)
	case QueryByEmployee:
		e, err := s.employees.FindEmployee(ctx, q.Employee)
		if err != nil {
			return nil, err
		}
		return s.repo.ListByEmployee(ctx, e.ID)
	case QueryByDateRange:
		return s.repo.ListByDateRange(ctx, q.From, q.To)
	default:
		return s.repo.List(ctx)
	}
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("scheduled seat deleted", slog.String("scheduled_seat_id", id))
	return nil
}
