package seat

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/office-seat-booking/internal/db"
)

// Repository defines data access for seats.
type Repository interface {
	Create(ctx context.Context, s *Seat) error
	GetByID(ctx context.Context, id string) (*Seat, error)
	// FindByNumber matches the seat number, scoped by rowID or rowNumber when set.
	FindByNumber(ctx context.Context, number int, rowID string, rowNumber int, limit int) ([]*Seat, error)
	FindByDescription(ctx context.Context, description string, limit int) ([]*Seat, error)
	List(ctx context.Context, filter Filter) ([]*Seat, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// seatSelect joins the containing row, area and office.
func seatSelect(extra ...string) squirrel.SelectBuilder {
	cols := append([]string{
		"s.id", "s.row_id", "r.number", "a.id", "a.number", "o.id", "o.number",
		"s.number", "s.description", "s.created_at",
	}, extra...)
	return psql.Select(cols...).
		From("public.seats s").
		Join("public.rows r ON s.row_id = r.id").
		Join("public.areas a ON r.area_id = a.id").
		Join("public.offices o ON a.office_id = o.id")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSeat(row scanner, extra ...any) (*Seat, error) {
	var s Seat
	dest := append([]any{
		&s.ID, &s.RowID, &s.RowNumber, &s.AreaID, &s.AreaNumber, &s.OfficeID, &s.OfficeNumber,
		&s.Number, &s.Description, &s.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Seat) error {
	query, args, err := psql.Insert("public.seats").
		Columns("row_id", "number", "description").
		Values(s.RowID, s.Number, s.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create seat query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrNumberTaken
		}
		return fmt.Errorf("create seat failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Seat, error) {
	query, args, err := seatSelect().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get seat query failed: %w", err)
	}

	s, err := scanSeat(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get seat failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) FindByNumber(ctx context.Context, number int, rowID string, rowNumber int, limit int) ([]*Seat, error) {
	query := seatSelect().Where(squirrel.Eq{"s.number": number})
	if rowID != "" {
		query = query.Where(squirrel.Eq{"s.row_id": rowID})
	}
	if rowNumber != 0 {
		query = query.Where(squirrel.Eq{"r.number": rowNumber})
	}
	return r.query(ctx, query.OrderBy("o.number", "a.number", "r.number").Limit(uint64(limit)))
}

func (r *pgxRepository) FindByDescription(ctx context.Context, description string, limit int) ([]*Seat, error) {
	query := seatSelect().
		Where(squirrel.Eq{"s.description": description}).
		OrderBy("o.number", "a.number", "r.number", "s.number").
		Limit(uint64(limit))
	return r.query(ctx, query)
}

func (r *pgxRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]*Seat, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find seats query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find seats failed: %w", err)
	}
	defer rows.Close()

	var seats []*Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seat failed: %w", err)
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Seat, int, error) {
	query := seatSelect("count(*) OVER() AS total_count")
	if filter.RowID != "" {
		query = query.Where(squirrel.Eq{"s.row_id": filter.RowID})
	}
	if filter.OfficeID != "" {
		query = query.Where(squirrel.Eq{"o.id": filter.OfficeID})
	}

	sql, args, err := query.
		OrderBy("o.number", "a.number", "r.number", "s.number").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list seats query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		if db.IsNotFound(err) {
			return []*Seat{}, 0, nil
		}
		return nil, 0, fmt.Errorf("list seats failed: %w", err)
	}
	defer rows.Close()

	var seats []*Seat
	var total int
	for rows.Next() {
		s, err := scanSeat(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan seat failed: %w", err)
		}
		seats = append(seats, s)
	}
	return seats, total, rows.Err()
}
