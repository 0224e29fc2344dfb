package seat

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/pkg/apperror"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, apperror.KindNotFound, "seat not found")
	ErrAmbiguous     = apperror.New(http.StatusConflict, apperror.KindAmbiguous, "more than one seat matches, narrow the criteria")
	ErrNoCriteria    = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "no seat identifying field given")
	ErrNumberTaken   = apperror.New(http.StatusConflict, apperror.KindAlreadyExists, "seat number already used in this row")
	ErrInvalidNumber = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "seat number must be positive")
)

// Seat is a single reservable desk. Row, area and office fields are read-only context.
type Seat struct {
	ID           string    `json:"id"`
	RowID        string    `json:"row_id"`
	RowNumber    int       `json:"row_number"`
	AreaID       string    `json:"area_id"`
	AreaNumber   int       `json:"area_number"`
	OfficeID     string    `json:"office_id"`
	OfficeNumber int       `json:"office_number"`
	Number       int       `json:"number"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// Criteria identifies a seat by id or natural key. Zero values are unset.
// RowID and RowNumber only scope a Number lookup.
type Criteria struct {
	ID          string
	Number      int
	RowID       string
	RowNumber   int
	Description string
}

// IsZero reports whether no identifying field is set.
func (c Criteria) IsZero() bool {
	return c.ID == "" && c.Number == 0 && c.Description == ""
}

// Filter narrows seat listings.
type Filter struct {
	request.ListParams
	RowID    string
	OfficeID string
}
