package seat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/nekogravitycat/office-seat-booking/internal/logging"
	"github.com/nekogravitycat/office-seat-booking/internal/office"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/cache"
)

type CreateRequest struct {
	RowID       string
	Number      int
	Description string
}

// RowGetter is the part of the office service seat creation needs.
type RowGetter interface {
	GetRow(ctx context.Context, id string) (*office.Row, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Seat, error)
	GetByID(ctx context.Context, id string) (*Seat, error)
	// FindSeat resolves criteria to exactly one seat:
	// id first, then number (scoped by row when given), then description.
	FindSeat(ctx context.Context, c Criteria) (*Seat, error)
	List(ctx context.Context, filter Filter) ([]*Seat, int, error)
}

type service struct {
	repo  Repository
	rows  RowGetter
	cache cache.Cache
}

// NewService creates a seat Service. A nil cache disables caching.
func NewService(repo Repository, rows RowGetter, c cache.Cache) Service {
	if c == nil {
		c = cache.Nop{}
	}
	return &service{repo: repo, rows: rows, cache: c}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Seat, error) {
	if req.Number <= 0 {
		return nil, ErrInvalidNumber
	}
	row, err := s.rows.GetRow(ctx, req.RowID)
	if err != nil {
		return nil, err
	}

	seat := &Seat{
		RowID:       row.ID,
		RowNumber:   row.Number,
		AreaID:      row.AreaID,
		AreaNumber:  row.AreaNumber,
		Number:      req.Number,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.Create(ctx, seat); err != nil {
		return nil, err
	}
	// Reload to pick up office context from the joins.
	return s.repo.GetByID(ctx, seat.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Seat, error) {
	key := cache.Key(cache.SeatNamespace, id)

	var cached Seat
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logging.FromContext(ctx).Warn("seat cache read failed", slog.Any("error", err))
	}
	if hit {
		return &cached, nil
	}

	seat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, seat); err != nil {
		logging.FromContext(ctx).Warn("seat cache write failed", slog.Any("error", err))
	}
	return seat, nil
}

func (s *service) FindSeat(ctx context.Context, c Criteria) (*Seat, error) {
	switch {
	case c.ID != "":
		// Resolution reads the store, a cached copy may outlive the row.
		return s.repo.GetByID(ctx, c.ID)
	case c.Number != 0:
		return one(s.repo.FindByNumber(ctx, c.Number, c.RowID, c.RowNumber, 2))
	case c.Description != "":
		return one(s.repo.FindByDescription(ctx, strings.TrimSpace(c.Description), 2))
	default:
		return nil, ErrNoCriteria
	}
}

// one narrows a lookup that fetched at most two rows to a single seat.
func one(found []*Seat, err error) (*Seat, error) {
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
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Seat, int, error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

// IsNotFound reports whether err is this package's not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
