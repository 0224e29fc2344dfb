package scheduled

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/office-seat-booking/internal/db"
	"github.com/nekogravitycat/office-seat-booking/internal/employee"
	"github.com/nekogravitycat/office-seat-booking/internal/seat"
)

// Repository persists reservations. Every read returns reservations enriched
// with the seat number and the employee summary.
type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	// Update replaces seat, employee, dates and repeat interval of r.ID.
	Update(ctx context.Context, r *Reservation) error
	Delete(ctx context.Context, id string) error

	ListBySeat(ctx context.Context, seatID string) ([]*Reservation, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Reservation, error)
	// ListByDateRange keeps reservations starting on or after from and ending
	// on or before to. A nil bound is not applied.
	ListByDateRange(ctx context.Context, from, to *time.Time) ([]*Reservation, error)
	List(ctx context.Context) ([]*Reservation, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func baseSelect() squirrel.SelectBuilder {
	return psql.Select(
		"ss.id", "ss.seat_id", "s.number",
		"ss.employee_id", "e.email", "e.first_name", "e.last_name",
		"ss.start_date", "ss.end_date", "ss.repeat_every",
		"ss.created_at", "ss.updated_at",
	).
		From("public.scheduled_seats ss").
		Join("public.seats s ON ss.seat_id = s.id").
		Join("public.employees e ON ss.employee_id = e.id")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReservation(row scanner) (*Reservation, error) {
	var r Reservation
	err := row.Scan(
		&r.ID, &r.SeatID, &r.SeatNumber,
		&r.EmployeeID, &r.EmployeeEmail, &r.EmployeeFirstName, &r.EmployeeLastName,
		&r.StartDate, &r.EndDate, &r.RepeatEvery,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) error {
	query, args, err := psql.Insert("public.scheduled_seats").
		Columns("seat_id", "employee_id", "start_date", "end_date", "repeat_every").
		Values(res.SeatID, res.EmployeeID, res.StartDate, res.EndDate, res.RepeatEvery).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create scheduled seat query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		if refErr := danglingReference(err); refErr != nil {
			return refErr
		}
		return fmt.Errorf("create scheduled seat failed: %w", err)
	}
	return nil
}

// danglingReference maps a foreign key failure to the missing side. A seat or
// employee removed between resolution and the write surfaces here.
func danglingReference(err error) error {
	if !db.IsForeignKeyViolation(err) {
		return nil
	}
	switch name := db.ConstraintName(err); {
	case strings.Contains(name, "employee_id"):
		return employee.ErrNotFound
	default:
		return seat.ErrNotFound
	}
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query, args, err := baseSelect().Where(squirrel.Eq{"ss.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get scheduled seat query failed: %w", err)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get scheduled seat failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) Update(ctx context.Context, res *Reservation) error {
	query, args, err := psql.Update("public.scheduled_seats").
		Set("seat_id", res.SeatID).
		Set("employee_id", res.EmployeeID).
		Set("start_date", res.StartDate).
		Set("end_date", res.EndDate).
		Set("repeat_every", res.RepeatEvery).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update scheduled seat query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		if refErr := danglingReference(err); refErr != nil {
			return refErr
		}
		if db.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("update scheduled seat failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.scheduled_seats").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete scheduled seat query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if db.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete scheduled seat failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListBySeat(ctx context.Context, seatID string) ([]*Reservation, error) {
	return r.list(ctx, baseSelect().Where(squirrel.Eq{"ss.seat_id": seatID}))
}

func (r *pgxRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*Reservation, error) {
	return r.list(ctx, baseSelect().Where(squirrel.Eq{"ss.employee_id": employeeID}))
}

func (r *pgxRepository) ListByDateRange(ctx context.Context, from, to *time.Time) ([]*Reservation, error) {
	query := baseSelect()
	if from != nil {
		query = query.Where(squirrel.GtOrEq{"ss.start_date": *from})
	}
	if to != nil {
		query = query.Where(squirrel.LtOrEq{"ss.end_date": *to})
	}
	return r.list(ctx, query)
}

func (r *pgxRepository) List(ctx context.Context) ([]*Reservation, error) {
	return r.list(ctx, baseSelect())
}

func (r *pgxRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*Reservation, error) {
	sql, args, err := q.OrderBy("ss.start_date", "s.number").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list scheduled seats query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list scheduled seats failed: %w", err)
	}
	defer rows.Close()

	out := []*Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled seat failed: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
