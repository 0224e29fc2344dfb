package user

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/office-seat-booking/internal/db"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxUserRepository{pool: pool}
}

// Email and names always come from the bound employee row.
const selectUser = `
	SELECT
		u.id,
		u.employee_id,
		e.email,
		e.first_name,
		e.last_name,
		u.password_hash,
		u.is_active,
		u.is_admin,
		u.created_at,
		u.last_login_at
	FROM public.users u
	JOIN public.employees e ON e.id = u.employee_id
`

func (r *pgxUserRepository) getOne(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, selectUser+where, arg).Scan(
		&u.ID,
		&u.EmployeeID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.IsActive,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.LastLoginAt,
	)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return &u, nil
}

func (r *pgxUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx, "WHERE u.id = $1", id)
}

func (r *pgxUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, "WHERE e.email = $1", email)
}

func (r *pgxUserRepository) Create(ctx context.Context, u *User) error {
	const query = `
		INSERT INTO public.users (employee_id, password_hash, is_active, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, u.EmployeeID, u.PasswordHash, u.IsActive, u.IsAdmin).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAlreadyRegistered
		}
		if db.IsForeignKeyViolation(err) {
			return ErrNotAnEmployee
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *pgxUserRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	const query = `UPDATE public.users SET last_login_at = $1 WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, t, id)
	if err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
