package office

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nekogravitycat/office-seat-booking/internal/logging"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/cache"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
)

type CreateOfficeRequest struct {
	Number int
	Name   string
}

type CreateAreaRequest struct {
	OfficeID    string
	Number      int
	Description string
	X           int
	Y           int
}

type CreateRowRequest struct {
	AreaID      string
	Number      int
	Description string
}

// Service manages offices and the areas and rows inside them.
type Service interface {
	CreateOffice(ctx context.Context, req CreateOfficeRequest) (*Office, error)
	GetOffice(ctx context.Context, id string) (*Office, error)
	// FindOffice resolves by id first, then by number.
	FindOffice(ctx context.Context, c OfficeCriteria) (*Office, error)
	ListOffices(ctx context.Context, params request.ListParams) ([]*Office, int, error)
	DeleteOffice(ctx context.Context, c OfficeCriteria) error
	SetFloorPlan(ctx context.Context, officeID, fileID string) (*Office, error)

	CreateArea(ctx context.Context, req CreateAreaRequest) (*Area, error)
	GetArea(ctx context.Context, id string) (*Area, error)
	FindAreas(ctx context.Context, filter AreaFilter) ([]*Area, error)

	CreateRow(ctx context.Context, req CreateRowRequest) (*Row, error)
	GetRow(ctx context.Context, id string) (*Row, error)
	FindRows(ctx context.Context, filter RowFilter) ([]*Row, error)

	Layout(ctx context.Context, officeID string) (*Layout, error)
}

type service struct {
	repo  Repository
	cache cache.Cache
}

// NewService creates an office Service. The cache is the one seats are
// stored in, so deleting an office can evict them. nil means no cache.
func NewService(repo Repository, c cache.Cache) Service {
	if c == nil {
		c = cache.Nop{}
	}
	return &service{repo: repo, cache: c}
}

func (s *service) CreateOffice(ctx context.Context, req CreateOfficeRequest) (*Office, error) {
	if req.Number <= 0 {
		return nil, ErrInvalidNumber
	}
	o := &Office{Number: req.Number, Name: strings.TrimSpace(req.Name)}
	if err := s.repo.CreateOffice(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetOffice(ctx context.Context, id string) (*Office, error) {
	return s.repo.GetOffice(ctx, id)
}

func (s *service) FindOffice(ctx context.Context, c OfficeCriteria) (*Office, error) {
	switch {
	case c.ID != "":
		return s.repo.GetOffice(ctx, c.ID)
	case c.Number != 0:
		return s.repo.GetOfficeByNumber(ctx, c.Number)
	default:
		return nil, ErrNoCriteria
	}
}

func (s *service) ListOffices(ctx context.Context, params request.ListParams) ([]*Office, int, error) {
	params.Normalize()
	return s.repo.ListOffices(ctx, params)
}

// DeleteOffice removes an office together with its areas, rows and seats.
func (s *service) DeleteOffice(ctx context.Context, c OfficeCriteria) error {
	o, err := s.FindOffice(ctx, c)
	if err != nil {
		return err
	}
	seatIDs, err := s.repo.SeatIDs(ctx, o.ID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteOffice(ctx, o.ID); err != nil {
		return err
	}

	logger := logging.FromContext(ctx)
	if len(seatIDs) > 0 {
		keys := make([]string, len(seatIDs))
		for i, id := range seatIDs {
			keys[i] = cache.Key(cache.SeatNamespace, id)
		}
		if err := s.cache.Delete(ctx, keys...); err != nil {
			logger.Warn("seat cache eviction failed", slog.String("office_id", o.ID), slog.Any("error", err))
		}
	}
	logger.Info("office deleted", slog.String("office_id", o.ID), slog.Int("number", o.Number), slog.Int("seats", len(seatIDs)))
	return nil
}

func (s *service) SetFloorPlan(ctx context.Context, officeID, fileID string) (*Office, error) {
	if err := s.repo.SetFloorPlan(ctx, officeID, &fileID); err != nil {
		return nil, err
	}
	return s.repo.GetOffice(ctx, officeID)
}

func (s *service) CreateArea(ctx context.Context, req CreateAreaRequest) (*Area, error) {
	if req.Number <= 0 {
		return nil, ErrInvalidNumber
	}
	o, err := s.repo.GetOffice(ctx, req.OfficeID)
	if err != nil {
		return nil, err
	}

	a := &Area{
		OfficeID:     o.ID,
		OfficeNumber: o.Number,
		Number:       req.Number,
		Description:  strings.TrimSpace(req.Description),
		X:            req.X,
		Y:            req.Y,
	}
	if err := s.repo.CreateArea(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetArea(ctx context.Context, id string) (*Area, error) {
	return s.repo.GetArea(ctx, id)
}

func (s *service) FindAreas(ctx context.Context, filter AreaFilter) ([]*Area, error) {
	return s.repo.ListAreas(ctx, filter)
}

func (s *service) CreateRow(ctx context.Context, req CreateRowRequest) (*Row, error) {
	if req.Number <= 0 {
		return nil, ErrInvalidNumber
	}
	a, err := s.repo.GetArea(ctx, req.AreaID)
	if err != nil {
		return nil, err
	}

	row := &Row{
		AreaID:      a.ID,
		AreaNumber:  a.Number,
		Number:      req.Number,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.CreateRow(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) GetRow(ctx context.Context, id string) (*Row, error) {
	return s.repo.GetRow(ctx, id)
}

func (s *service) FindRows(ctx context.Context, filter RowFilter) ([]*Row, error) {
	return s.repo.ListRows(ctx, filter)
}

func (s *service) Layout(ctx context.Context, officeID string) (*Layout, error) {
	o, err := s.repo.GetOffice(ctx, officeID)
	if err != nil {
		return nil, err
	}
	areas, err := s.repo.Layout(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if areas == nil {
		areas = []*AreaLayout{}
	}
	return &Layout{Office: o, Areas: areas}, nil
}
