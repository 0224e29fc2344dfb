package employee

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/nekogravitycat/office-seat-booking/internal/logging"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/cache"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
)

type CreateRequest struct {
	Email     string
	FirstName string
	LastName  string
}

// Service defines business logic related to employees.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Employee, error)
	GetByID(ctx context.Context, id string) (*Employee, error)
	// FindEmployee resolves criteria to exactly one employee:
	// id first, then email, then the first/last name pair.
	FindEmployee(ctx context.Context, c Criteria) (*Employee, error)
	List(ctx context.Context, params request.ListParams) ([]*Employee, int, error)
}

type service struct {
	repo  Repository
	cache cache.Cache
}

// NewService creates a new employee Service. A nil cache disables caching.
func NewService(repo Repository, c cache.Cache) Service {
	if c == nil {
		c = cache.Nop{}
	}
	return &service{repo: repo, cache: c}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Employee, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return nil, ErrNameRequired
	}

	e := &Employee{Email: email, FirstName: first, LastName: last}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Employee, error) {
	key := cache.Key(cache.EmployeeNamespace, id)

	var cached Employee
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logging.FromContext(ctx).Warn("employee cache read failed", slog.Any("error", err))
	}
	if hit {
		return &cached, nil
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, e); err != nil {
		logging.FromContext(ctx).Warn("employee cache write failed", slog.Any("error", err))
	}
	return e, nil
}

func (s *service) FindEmployee(ctx context.Context, c Criteria) (*Employee, error) {
	switch {
	case c.ID != "":
		return s.GetByID(ctx, c.ID)
	case c.Email != "":
		return s.repo.GetByEmail(ctx, NormalizeEmail(c.Email))
	case c.FirstName != "" || c.LastName != "":
		// Two rows are enough to tell unique from ambiguous.
		found, err := s.repo.FindByName(ctx, strings.TrimSpace(c.FirstName), strings.TrimSpace(c.LastName), 2)
		if err != nil {
			return nil, err
		}
		switch len(found) {
		case 0:
			return nil, ErrNotFound
		case 1:
			return found[0], nil
		default:
			return nil, ErrAmbiguous
		}
	default:
		return nil, ErrNoCriteria
	}
}

func (s *service) List(ctx context.Context, params request.ListParams) ([]*Employee, int, error) {
	params.Normalize()
	return s.repo.List(ctx, params)
}

// NormalizeEmail trims spaces and lowercases the email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsNotFound reports whether err is this package's not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
