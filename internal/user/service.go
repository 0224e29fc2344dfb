package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/auth"
	"github.com/nekogravitycat/office-seat-booking/internal/employee"
	"github.com/nekogravitycat/office-seat-booking/internal/logging"
)

// EmployeeFinder resolves the employee record an account is bound to.
type EmployeeFinder interface {
	FindEmployee(ctx context.Context, c employee.Criteria) (*employee.Employee, error)
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo        Repository
	employees   EmployeeFinder
	hasher      auth.PasswordHasher
	adminEmails []string
	now         func() time.Time

	minPasswordLength int
}

// NewService creates a new user Service. Accounts registered with one of
// adminEmails are created as admins.
func NewService(repo Repository, employees EmployeeFinder, hasher auth.PasswordHasher, adminEmails []string) Service {
	normalized := make([]string, 0, len(adminEmails))
	for _, e := range adminEmails {
		normalized = append(normalized, employee.NormalizeEmail(e))
	}
	return &service{
		repo:              repo,
		employees:         employees,
		hasher:            hasher,
		adminEmails:       normalized,
		now:               time.Now,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := employee.NormalizeEmail(req.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	emp, err := s.employees.FindEmployee(ctx, employee.Criteria{Email: email})
	if err != nil {
		if employee.IsNotFound(err) {
			return nil, ErrNotAnEmployee
		}
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	if !sameName(emp.FirstName, req.FirstName) || !sameName(emp.LastName, req.LastName) {
		return nil, ErrNameMismatch
	}

	_, err = s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrAlreadyRegistered
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		EmployeeID:   emp.ID,
		Email:        emp.Email,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      slices.Contains(s.adminEmails, email),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("user registered",
		slog.String("user_id", u.ID),
		slog.String("employee_id", u.EmployeeID),
		slog.Bool("admin", u.IsAdmin),
	)
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	clean := employee.NormalizeEmail(email)
	if clean == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, clean)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort, a failed timestamp write must not block the login.
	if err := s.repo.UpdateLastLogin(ctx, u.ID, s.now().UTC()); err != nil {
		logging.FromContext(ctx).Warn("failed to record last login",
			slog.String("user_id", u.ID),
			slog.Any("error", err),
		)
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func sameName(stored, given string) bool {
	return strings.EqualFold(strings.TrimSpace(stored), strings.TrimSpace(given))
}
