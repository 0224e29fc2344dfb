package scheduled

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/office-seat-booking/internal/employee"
	"github.com/nekogravitycat/office-seat-booking/internal/logging"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/apperror"
	"github.com/nekogravitycat/office-seat-booking/internal/seat"
)

type memRepo struct {
	rows    map[string]*Reservation
	seq     int
	failAll error
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[string]*Reservation{}}
}

func (m *memRepo) sorted(keep func(*Reservation) bool) ([]*Reservation, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	out := []*Reservation{}
	for _, r := range m.rows {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) Create(_ context.Context, r *Reservation) error {
	m.seq++
	r.ID = "res-" + strconv.Itoa(m.seq)
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Reservation, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) Update(_ context.Context, r *Reservation) error {
	if _, ok := m.rows[r.ID]; !ok {
		return ErrNotFound
	}
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepo) ListBySeat(_ context.Context, seatID string) ([]*Reservation, error) {
	return m.sorted(func(r *Reservation) bool { return r.SeatID == seatID })
}

func (m *memRepo) ListByEmployee(_ context.Context, employeeID string) ([]*Reservation, error) {
	return m.sorted(func(r *Reservation) bool { return r.EmployeeID == employeeID })
}

func (m *memRepo) ListByDateRange(_ context.Context, from, to *time.Time) ([]*Reservation, error) {
	return m.sorted(func(r *Reservation) bool {
		if from != nil && r.StartDate.Before(*from) {
			return false
		}
		if to != nil && r.EndDate.After(*to) {
			return false
		}
		return true
	})
}

func (m *memRepo) List(context.Context) ([]*Reservation, error) {
	return m.sorted(func(*Reservation) bool { return true })
}

type seatsFake struct {
	seats []*seat.Seat
	calls int
}

func (f *seatsFake) FindSeat(_ context.Context, c seat.Criteria) (*seat.Seat, error) {
	f.calls++
	for _, s := range f.seats {
		if (c.ID != "" && s.ID == c.ID) || (c.ID == "" && c.Number != 0 && s.Number == c.Number) {
			return s, nil
		}
	}
	if c.IsZero() {
		return nil, seat.ErrNoCriteria
	}
	return nil, seat.ErrNotFound
}

type employeesFake struct {
	employees []*employee.Employee
}

func (f *employeesFake) FindEmployee(_ context.Context, c employee.Criteria) (*employee.Employee, error) {
	for _, e := range f.employees {
		if (c.ID != "" && e.ID == c.ID) || (c.ID == "" && c.Email != "" && e.Email == c.Email) {
			return e, nil
		}
	}
	return nil, employee.ErrNotFound
}

type fixture struct {
	svc       Service
	repo      *memRepo
	seats     *seatsFake
	employees *employeesFake
	logs      *bytes.Buffer
	ctx       context.Context
}

// newFixture runs with "today" fixed at 2025-03-01.
func newFixture() *fixture {
	repo := newMemRepo()
	seats := &seatsFake{seats: []*seat.Seat{
		{ID: "s101", Number: 101},
		{ID: "s102", Number: 102},
		{ID: "s103", Number: 103},
	}}
	employees := &employeesFake{employees: []*employee.Employee{
		{ID: "ann", Email: "ann@office.test", FirstName: "Ann", LastName: "Lee"},
		{ID: "bob", Email: "bob@office.test", FirstName: "Bob", LastName: "Kim"},
	}}
	clock := ClockFunc(func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) })

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return &fixture{
		svc:       NewService(repo, seats, employees, clock, time.UTC),
		repo:      repo,
		seats:     seats,
		employees: employees,
		logs:      logs,
		ctx:       logging.ContextWithLogger(context.Background(), logger),
	}
}

func book(seatNumber int, employeeEmail, start, end string) WriteRequest {
	return WriteRequest{
		Seat:      seat.Criteria{Number: seatNumber},
		Employee:  employee.Criteria{Email: employeeEmail},
		StartDate: date(start),
		EndDate:   date(end),
	}
}

func (f *fixture) mustCreate(t *testing.T, req WriteRequest) *Reservation {
	t.Helper()
	r, err := f.svc.Create(f.ctx, req)
	require.NoError(t, err)
	return r
}

func TestCreate(t *testing.T) {
	f := newFixture()

	r := f.mustCreate(t, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "s101", r.SeatID)
	assert.Equal(t, 101, r.SeatNumber)
	assert.Equal(t, "ann", r.EmployeeID)
	assert.Equal(t, date("2025-03-10"), r.StartDate)
	assert.Equal(t, date("2025-03-12"), r.EndDate)
	assert.Len(t, f.repo.rows, 1)
	assert.Contains(t, f.logs.String(), "seat scheduled")
}

func TestCreateSeatTakenOnSharedBoundaryDay(t *testing.T) {
	f := newFixture()
	f.mustCreate(t, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))

	_, err := f.svc.Create(f.ctx, book(101, "bob@office.test", "2025-03-12", "2025-03-14"))
	assert.ErrorIs(t, err, ErrSeatTaken)
	assert.Equal(t, apperror.KindSeatTaken, apperror.KindOf(err))
	assert.Contains(t, f.logs.String(), "scheduling rejected")

	f.mustCreate(t, book(101, "bob@office.test", "2025-03-13", "2025-03-14"))
	assert.Len(t, f.repo.rows, 2)
}

func TestCreateEmployeeDoubleBookedNamesSeat(t *testing.T) {
	f := newFixture()
	f.mustCreate(t, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))

	_, err := f.svc.Create(f.ctx, book(102, "ann@office.test", "2025-03-11", "2025-03-11"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmployeeDoubleBooked)
	assert.Equal(t, "Employee already has a seat for this time (101)", err.Error())
	assert.Equal(t, 409, apperror.StatusOf(err))
	assert.Len(t, f.repo.rows, 1)
}

func TestCreateDateRules(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(f.ctx, book(101, "ann@office.test", "2025-03-12", "2025-03-10"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = f.svc.Create(f.ctx, book(101, "ann@office.test", "2025-02-28", "2025-03-02"))
	assert.ErrorIs(t, err, ErrPastDate)

	// Date checks run before any lookup.
	assert.Zero(t, f.seats.calls)

	// Today itself is bookable, whatever the hour.
	req := book(101, "ann@office.test", "2025-03-01", "2025-03-01")
	req.StartDate = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f.mustCreate(t, req)

	_, err = f.svc.Create(f.ctx, WriteRequest{Seat: seat.Criteria{Number: 101}})
	assert.ErrorIs(t, err, ErrDatesRequired)

	zero := 0
	req = book(102, "bob@office.test", "2025-03-05", "2025-03-05")
	req.RepeatEvery = &zero
	_, err = f.svc.Create(f.ctx, req)
	assert.ErrorIs(t, err, ErrInvalidRepeat)
}

func TestCreatePropagatesLookupErrors(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(f.ctx, book(999, "ann@office.test", "2025-03-10", "2025-03-12"))
	assert.ErrorIs(t, err, seat.ErrNotFound)

	_, err = f.svc.Create(f.ctx, book(101, "nobody@office.test", "2025-03-10", "2025-03-12"))
	assert.ErrorIs(t, err, employee.ErrNotFound)

	assert.Empty(t, f.repo.rows)
}

func TestCreateStoreErrorIsNotReadAsFree(t *testing.T) {
	f := newFixture()
	f.repo.failAll = errors.New("connection reset")

	_, err := f.svc.Create(f.ctx, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))
	require.Error(t, err)
	assert.Equal(t, apperror.KindStoreFailure, apperror.KindOf(err))
	assert.Empty(t, f.repo.rows)
}

func TestUpdateSameRangeDoesNotConflictWithItself(t *testing.T) {
	f := newFixture()
	r := f.mustCreate(t, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))

	got, err := f.svc.Update(f.ctx, r.ID, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	got, err = f.svc.Update(f.ctx, r.ID, book(101, "ann@office.test", "2025-03-11", "2025-03-20"))
	require.NoError(t, err)
	assert.Equal(t, date("2025-03-20"), f.repo.rows[r.ID].EndDate)
	assert.Equal(t, date("2025-03-20"), got.EndDate)
}

func TestUpdateMovesSeatAndEmployee(t *testing.T) {
	f := newFixture()
	r := f.mustCreate(t, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))

	got, err := f.svc.Update(f.ctx, r.ID, book(102, "bob@office.test", "2025-03-10", "2025-03-12"))
	require.NoError(t, err)
	stored := f.repo.rows[r.ID]
	assert.Equal(t, "s102", stored.SeatID)
	assert.Equal(t, "bob", stored.EmployeeID)
	assert.Equal(t, 102, got.SeatNumber)
	assert.Len(t, f.repo.rows, 1)
}

func TestUpdateConflicts(t *testing.T) {
	f := newFixture()
	annAt101 := f.mustCreate(t, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))
	bobAt102 := f.mustCreate(t, book(102, "bob@office.test", "2025-03-10", "2025-03-12"))
	annAt103 := f.mustCreate(t, book(103, "ann@office.test", "2025-03-20", "2025-03-22"))

	t.Run("seat held by another reservation", func(t *testing.T) {
		_, err := f.svc.Update(f.ctx, bobAt102.ID, book(101, "bob@office.test", "2025-03-12", "2025-03-12"))
		assert.ErrorIs(t, err, ErrSeatTaken)
	})

	t.Run("employee already sits elsewhere", func(t *testing.T) {
		_, err := f.svc.Update(f.ctx, annAt103.ID, book(103, "ann@office.test", "2025-03-11", "2025-03-21"))
		require.ErrorIs(t, err, ErrEmployeeDoubleBooked)
		assert.Contains(t, err.Error(), "(101)")
	})

	t.Run("unchanged rows after rejected updates", func(t *testing.T) {
		assert.Equal(t, "s102", f.repo.rows[bobAt102.ID].SeatID)
		assert.Equal(t, date("2025-03-20"), f.repo.rows[annAt103.ID].StartDate)
		assert.Equal(t, "s101", f.repo.rows[annAt101.ID].SeatID)
	})
}

func TestUpdateOverlapOnOwnSeatIsSeatTaken(t *testing.T) {
	f := newFixture()
	first := f.mustCreate(t, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))
	f.mustCreate(t, book(101, "ann@office.test", "2025-03-20", "2025-03-22"))

	_, err := f.svc.Update(f.ctx, first.ID, book(101, "ann@office.test", "2025-03-10", "2025-03-21"))
	assert.ErrorIs(t, err, ErrSeatTaken)
	assert.NotErrorIs(t, err, ErrEmployeeDoubleBooked)

	got, err := f.svc.Update(f.ctx, first.ID, book(101, "ann@office.test", "2025-03-10", "2025-03-19"))
	require.NoError(t, err)
	assert.Equal(t, date("2025-03-19"), got.EndDate)
}

func TestUpdateUnknownID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Update(f.ctx, "missing", book(101, "ann@office.test", "2025-03-12", "2025-03-10"))
	assert.ErrorIs(t, err, ErrNotFound, "not found is reported before date validation")
}

func TestUpdateRejectsPastStart(t *testing.T) {
	f := newFixture()
	r := f.mustCreate(t, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))

	_, err := f.svc.Update(f.ctx, r.ID, book(101, "ann@office.test", "2025-02-01", "2025-03-12"))
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestFindDispatch(t *testing.T) {
	f := newFixture()
	r1 := f.mustCreate(t, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))
	r2 := f.mustCreate(t, book(102, "bob@office.test", "2025-03-05", "2025-03-20"))
	r3 := f.mustCreate(t, book(101, "bob@office.test", "2025-03-25", "2025-03-26"))

	ids := func(rs []*Reservation) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.ID
		}
		return out
	}

	got, err := f.svc.Find(f.ctx, Criteria{ID: r2.ID, SeatNumber: 101})
	require.NoError(t, err)
	assert.Equal(t, []string{r2.ID}, ids(got))

	_, err = f.svc.Find(f.ctx, Criteria{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err = f.svc.Find(f.ctx, Criteria{SeatNumber: 101, EmployeeEmail: "ann@office.test"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{r1.ID, r3.ID}, ids(got))

	_, err = f.svc.Find(f.ctx, Criteria{SeatNumber: 999})
	assert.ErrorIs(t, err, seat.ErrNotFound)

	got, err = f.svc.Find(f.ctx, Criteria{EmployeeEmail: "bob@office.test"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{r2.ID, r3.ID}, ids(got))

	from, to := date("2025-03-06"), date("2025-03-26")
	got, err = f.svc.Find(f.ctx, Criteria{StartDate: &from, EndDate: &to})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{r1.ID, r3.ID}, ids(got), "inclusive bounds on both ends")

	got, err = f.svc.Find(f.ctx, Criteria{EndDate: &to})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = f.svc.Find(f.ctx, Criteria{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, r := range got {
		assert.NotZero(t, r.SeatNumber)
		assert.NotEmpty(t, r.EmployeeEmail)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture()
	r := f.mustCreate(t, book(101, "ann@office.test", "2025-03-10", "2025-03-12"))

	require.NoError(t, f.svc.Delete(f.ctx, r.ID))
	assert.ErrorIs(t, f.svc.Delete(f.ctx, r.ID), ErrNotFound)

	_, err := f.svc.GetByID(f.ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The seat is free again.
	f.mustCreate(t, book(101, "bob@office.test", "2025-03-10", "2025-03-12"))
}

func TestTodayUsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	clock := ClockFunc(func() time.Time { return time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC) })

	svc := NewService(newMemRepo(), &seatsFake{}, &employeesFake{}, clock, tokyo)
	assert.Equal(t, date("2025-03-02"), svc.Today())
}
