package http

import (
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
	"github.com/nekogravitycat/office-seat-booking/internal/seat"
)

// ListSeatsRequest pages through seats, or resolves one seat when id, number
// or description is given.
type ListSeatsRequest struct {
	request.ListParams
	ID          string `form:"id" binding:"omitempty,uuid"`
	Number      int    `form:"number" binding:"omitempty,min=1"`
	RowID       string `form:"row_id" binding:"omitempty,uuid"`
	RowNumber   int    `form:"row_number" binding:"omitempty,min=1"`
	OfficeID    string `form:"office_id" binding:"omitempty,uuid"`
	Description string `form:"description"`
}

func (r ListSeatsRequest) Criteria() seat.Criteria {
	return seat.Criteria{
		ID:          r.ID,
		Number:      r.Number,
		RowID:       r.RowID,
		RowNumber:   r.RowNumber,
		Description: r.Description,
	}
}

type CreateSeatBody struct {
	RowID       string `json:"row_id" binding:"required,uuid"`
	Number      int    `json:"number" binding:"required,min=1"`
	Description string `json:"description"`
}

type SeatResponse struct {
	ID           string    `json:"id"`
	Number       int       `json:"number"`
	Description  string    `json:"description"`
	RowID        string    `json:"row_id"`
	RowNumber    int       `json:"row_number"`
	AreaID       string    `json:"area_id"`
	AreaNumber   int       `json:"area_number"`
	OfficeID     string    `json:"office_id"`
	OfficeNumber int       `json:"office_number"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewSeatResponse(s *seat.Seat) SeatResponse {
	return SeatResponse{
		ID:           s.ID,
		Number:       s.Number,
		Description:  s.Description,
		RowID:        s.RowID,
		RowNumber:    s.RowNumber,
		AreaID:       s.AreaID,
		AreaNumber:   s.AreaNumber,
		OfficeID:     s.OfficeID,
		OfficeNumber: s.OfficeNumber,
		CreatedAt:    s.CreatedAt,
	}
}
