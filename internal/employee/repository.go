package employee

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/office-seat-booking/internal/db"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
)

// Repository defines methods for accessing employee data from storage.
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	// FindByName matches on whichever of first/last name is non-empty.
	FindByName(ctx context.Context, firstName, lastName string, limit int) ([]*Employee, error)
	List(ctx context.Context, params request.ListParams) ([]*Employee, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{"id", "email", "first_name", "last_name", "created_at"}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*Employee, error) {
	var e Employee
	if err := row.Scan(&e.ID, &e.Email, &e.FirstName, &e.LastName, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *pgxRepository) Create(ctx context.Context, e *Employee) error {
	query, args, err := psql.Insert("public.employees").
		Columns("email", "first_name", "last_name").
		Values(e.Email, e.FirstName, e.LastName).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create employee query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create employee failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*Employee, error) {
	query, args, err := psql.Select(columns...).
		From("public.employees").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get employee query failed: %w", err)
	}

	e, err := scanEmployee(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get employee failed: %w", err)
	}
	return e, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Employee, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *pgxRepository) FindByName(ctx context.Context, firstName, lastName string, limit int) ([]*Employee, error) {
	query := psql.Select(columns...).From("public.employees")
	if firstName != "" {
		query = query.Where(squirrel.ILike{"first_name": firstName})
	}
	if lastName != "" {
		query = query.Where(squirrel.ILike{"last_name": lastName})
	}
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.OrderBy("created_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find employees query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find employees failed: %w", err)
	}
	defer rows.Close()

	var out []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee failed: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *pgxRepository) List(ctx context.Context, params request.ListParams) ([]*Employee, int, error) {
	params.Normalize()
	sql, args, err := psql.Select(append(columns, "count(*) OVER() AS total_count")...).
		From("public.employees").
		OrderBy("last_name", "first_name").
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list employees query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees failed: %w", err)
	}
	defer rows.Close()

	var out []*Employee
	var total int
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Email, &e.FirstName, &e.LastName, &e.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan employee failed: %w", err)
		}
		out = append(out, &e)
	}
	return out, total, rows.Err()
}
