package office

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, apperror.KindNotFound, "office not found")
	ErrAreaNotFound  = apperror.New(http.StatusNotFound, apperror.KindNotFound, "area not found")
	ErrRowNotFound   = apperror.New(http.StatusNotFound, apperror.KindNotFound, "row not found")
	ErrNumberTaken   = apperror.New(http.StatusConflict, apperror.KindAlreadyExists, "number already used")
	ErrInvalidNumber = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "number must be positive")
	ErrNoCriteria    = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "no office identifying field given")
)

// Office is a building floor with its own floor plan.
type Office struct {
	ID              string
	Number          int
	Name            string
	FloorPlanFileID *string
	CreatedAt       time.Time
}

// Area is a zone of an office placed on the floor plan grid at (X, Y).
type Area struct {
	ID           string
	OfficeID     string
	OfficeNumber int
	Number       int
	Description  string
	X            int
	Y            int
}

// Row is a line of seats inside an area.
type Row struct {
	ID          string
	AreaID      string
	AreaNumber  int
	Number      int
	Description string
}

// OfficeCriteria identifies an office by id or number.
type OfficeCriteria struct {
	ID     string
	Number int
}

// AreaFilter narrows area lookups. Zero values are unset.
type AreaFilter struct {
	OfficeID     string
	OfficeNumber int
	Number       int
}

// RowFilter narrows row lookups. Zero values are unset.
type RowFilter struct {
	AreaID string
	Number int
}

// Layout is the nested read model the floor plan view renders.
type Layout struct {
	Office *Office
	Areas  []*AreaLayout
}

type AreaLayout struct {
	Area
	Rows []*RowLayout
}

type RowLayout struct {
	Row
	Seats []SeatTag
}

// SeatTag is the part of a seat the floor plan needs.
type SeatTag struct {
	ID          string
	Number      int
	Description string
}
