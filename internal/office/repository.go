package office

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/office-seat-booking/internal/db"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
)

// Repository defines data access methods for the office hierarchy.
type Repository interface {
	CreateOffice(ctx context.Context, o *Office) error
	GetOffice(ctx context.Context, id string) (*Office, error)
	GetOfficeByNumber(ctx context.Context, number int) (*Office, error)
	ListOffices(ctx context.Context, params request.ListParams) ([]*Office, int, error)
	DeleteOffice(ctx context.Context, id string) error
	// SeatIDs lists every seat inside an office.
	SeatIDs(ctx context.Context, officeID string) ([]string, error)
	SetFloorPlan(ctx context.Context, officeID string, fileID *string) error

	CreateArea(ctx context.Context, a *Area) error
	GetArea(ctx context.Context, id string) (*Area, error)
	ListAreas(ctx context.Context, filter AreaFilter) ([]*Area, error)

	CreateRow(ctx context.Context, r *Row) error
	GetRow(ctx context.Context, id string) (*Row, error)
	ListRows(ctx context.Context, filter RowFilter) ([]*Row, error)

	// Layout loads every area, row and seat of an office, ordered by number.
	Layout(ctx context.Context, officeID string) ([]*AreaLayout, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) CreateOffice(ctx context.Context, o *Office) error {
	query, args, err := psql.Insert("public.offices").
		Columns("number", "name").
		Values(o.Number, o.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create office query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&o.ID, &o.CreatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrNumberTaken
		}
		return fmt.Errorf("create office failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getOffice(ctx context.Context, where squirrel.Sqlizer) (*Office, error) {
	query, args, err := psql.Select("id", "number", "name", "floor_plan_file_id", "created_at").
		From("public.offices").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get office query failed: %w", err)
	}

	var o Office
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&o.ID, &o.Number, &o.Name, &o.FloorPlanFileID, &o.CreatedAt); err != nil {
		if db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get office failed: %w", err)
	}
	return &o, nil
}

func (r *pgxRepository) GetOffice(ctx context.Context, id string) (*Office, error) {
	return r.getOffice(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetOfficeByNumber(ctx context.Context, number int) (*Office, error) {
	return r.getOffice(ctx, squirrel.Eq{"number": number})
}

func (r *pgxRepository) ListOffices(ctx context.Context, params request.ListParams) ([]*Office, int, error) {
	sql, args, err := psql.Select("id", "number", "name", "floor_plan_file_id", "created_at", "count(*) OVER() AS total_count").
		From("public.offices").
		OrderBy("number").
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list offices query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list offices failed: %w", err)
	}
	defer rows.Close()

	var offices []*Office
	var total int
	for rows.Next() {
		var o Office
		if err := rows.Scan(&o.ID, &o.Number, &o.Name, &o.FloorPlanFileID, &o.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan office failed: %w", err)
		}
		offices = append(offices, &o)
	}
	return offices, total, rows.Err()
}

func (r *pgxRepository) DeleteOffice(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.offices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete office query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if db.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete office failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SeatIDs(ctx context.Context, officeID string) ([]string, error) {
	query, args, err := psql.Select("s.id").
		From("public.seats s").
		Join("public.rows r ON s.row_id = r.id").
		Join("public.areas a ON r.area_id = a.id").
		Where(squirrel.Eq{"a.office_id": officeID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build office seat ids query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list office seat ids failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan office seat id failed: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *pgxRepository) SetFloorPlan(ctx context.Context, officeID string, fileID *string) error {
	query, args, err := psql.Update("public.offices").
		Set("floor_plan_file_id", fileID).
		Where(squirrel.Eq{"id": officeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set floor plan query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set floor plan failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CreateArea(ctx context.Context, a *Area) error {
	query, args, err := psql.Insert("public.areas").
		Columns("office_id", "number", "description", "x", "y").
		Values(a.OfficeID, a.Number, a.Description, a.X, a.Y).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create area query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&a.ID); err != nil {
		switch {
		case db.IsUniqueViolation(err):
			return ErrNumberTaken
		case db.IsForeignKeyViolation(err):
			return ErrNotFound
		}
		return fmt.Errorf("create area failed: %w", err)
	}
	return nil
}

func areaSelect() squirrel.SelectBuilder {
	return psql.Select("a.id", "a.office_id", "o.number", "a.number", "a.description", "a.x", "a.y").
		From("public.areas a").
		Join("public.offices o ON a.office_id = o.id")
}

func (r *pgxRepository) GetArea(ctx context.Context, id string) (*Area, error) {
	query, args, err := areaSelect().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get area query failed: %w", err)
	}

	var a Area
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.OfficeID, &a.OfficeNumber, &a.Number, &a.Description, &a.X, &a.Y); err != nil {
		if db.IsNotFound(err) {
			return nil, ErrAreaNotFound
		}
		return nil, fmt.Errorf("get area failed: %w", err)
	}
	return &a, nil
}

func (r *pgxRepository) ListAreas(ctx context.Context, filter AreaFilter) ([]*Area, error) {
	query := areaSelect()
	if filter.OfficeID != "" {
		query = query.Where(squirrel.Eq{"a.office_id": filter.OfficeID})
	}
	if filter.OfficeNumber != 0 {
		query = query.Where(squirrel.Eq{"o.number": filter.OfficeNumber})
	}
	if filter.Number != 0 {
		query = query.Where(squirrel.Eq{"a.number": filter.Number})
	}

	sql, args, err := query.OrderBy("o.number", "a.number").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list areas query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list areas failed: %w", err)
	}
	defer rows.Close()

	var areas []*Area
	for rows.Next() {
		var a Area
		if err := rows.Scan(&a.ID, &a.OfficeID, &a.OfficeNumber, &a.Number, &a.Description, &a.X, &a.Y); err != nil {
			return nil, fmt.Errorf("scan area failed: %w", err)
		}
		areas = append(areas, &a)
	}
	return areas, rows.Err()
}

func (r *pgxRepository) CreateRow(ctx context.Context, row *Row) error {
	query, args, err := psql.Insert("public.rows").
		Columns("area_id", "number", "description").
		Values(row.AreaID, row.Number, row.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create row query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&row.ID); err != nil {
		switch {
		case db.IsUniqueViolation(err):
			return ErrNumberTaken
		case db.IsForeignKeyViolation(err):
			return ErrAreaNotFound
		}
		return fmt.Errorf("create row failed: %w", err)
	}
	return nil
}

func rowSelect() squirrel.SelectBuilder {
	return psql.Select("r.id", "r.area_id", "a.number", "r.number", "r.description").
		From("public.rows r").
		Join("public.areas a ON r.area_id = a.id")
}

func (r *pgxRepository) GetRow(ctx context.Context, id string) (*Row, error) {
	query, args, err := rowSelect().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get row query failed: %w", err)
	}

	var row Row
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&row.ID, &row.AreaID, &row.AreaNumber, &row.Number, &row.Description); err != nil {
		if db.IsNotFound(err) {
			return nil, ErrRowNotFound
		}
		return nil, fmt.Errorf("get row failed: %w", err)
	}
	return &row, nil
}

func (r *pgxRepository) ListRows(ctx context.Context, filter RowFilter) ([]*Row, error) {
	query := rowSelect()
	if filter.AreaID != "" {
		query = query.Where(squirrel.Eq{"r.area_id": filter.AreaID})
	}
	if filter.Number != 0 {
		query = query.Where(squirrel.Eq{"r.number": filter.Number})
	}

	sql, args, err := query.OrderBy("a.number", "r.number").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list rows failed: %w", err)
	}
	defer rows.Close()

	var out []*Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.AreaID, &row.AreaNumber, &row.Number, &row.Description); err != nil {
			return nil, fmt.Errorf("scan row failed: %w", err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

func (r *pgxRepository) Layout(ctx context.Context, officeID string) ([]*AreaLayout, error) {
	sql, args, err := psql.Select(
		"a.id", "a.office_id", "o.number", "a.number", "a.description", "a.x", "a.y",
		"r.id", "r.number", "r.description",
		"s.id", "s.number", "s.description",
	).
		From("public.areas a").
		Join("public.offices o ON a.office_id = o.id").
		LeftJoin("public.rows r ON r.area_id = a.id").
		LeftJoin("public.seats s ON s.row_id = r.id").
		Where(squirrel.Eq{"a.office_id": officeID}).
		OrderBy("a.number", "r.number", "s.number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build layout query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("load layout failed: %w", err)
	}
	defer rows.Close()

	var flat []layoutRow
	for rows.Next() {
		var lr layoutRow
		if err := rows.Scan(
			&lr.area.ID, &lr.area.OfficeID, &lr.area.OfficeNumber, &lr.area.Number, &lr.area.Description, &lr.area.X, &lr.area.Y,
			&lr.rowID, &lr.rowNumber, &lr.rowDescription,
			&lr.seatID, &lr.seatNumber, &lr.seatDescription,
		); err != nil {
			return nil, fmt.Errorf("scan layout failed: %w", err)
		}
		flat = append(flat, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate layout failed: %w", err)
	}
	return assembleLayout(flat), nil
}
