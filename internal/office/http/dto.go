package http

import (
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/file"
	"github.com/nekogravitycat/office-seat-booking/internal/office"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
)

type ListOfficesRequest struct {
	request.ListParams
	Number int `form:"number" binding:"omitempty,min=1"`
}

type DeleteOfficeRequest struct {
	Number int `form:"number" binding:"required,min=1"`
}

type CreateOfficeBody struct {
	Number int    `json:"number" binding:"required,min=1"`
	Name   string `json:"name"`
}

type OfficeResponse struct {
	ID                    string    `json:"id"`
	Number                int       `json:"number"`
	Name                  string    `json:"name"`
	FloorPlanURL          *string   `json:"floor_plan_url"`
	FloorPlanThumbnailURL *string   `json:"floor_plan_thumbnail_url"`
	CreatedAt             time.Time `json:"created_at"`
}

func NewOfficeResponse(o *office.Office) OfficeResponse {
	resp := OfficeResponse{
		ID:        o.ID,
		Number:    o.Number,
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
	}
	if o.FloorPlanFileID != nil {
		u := file.FileURL(*o.FloorPlanFileID)
		t := file.ThumbnailURL(*o.FloorPlanFileID)
		resp.FloorPlanURL = &u
		resp.FloorPlanThumbnailURL = &t
	}
	return resp
}

type ListAreasRequest struct {
	OfficeID     string `form:"office_id" binding:"omitempty,uuid"`
	OfficeNumber int    `form:"office_number" binding:"omitempty,min=1"`
	Number       int    `form:"number" binding:"omitempty,min=1"`
}

type CreateAreaBody struct {
	OfficeID    string `json:"office_id" binding:"required,uuid"`
	Number      int    `json:"number" binding:"required,min=1"`
	Description string `json:"description"`
	X           int    `json:"x" binding:"min=0"`
	Y           int    `json:"y" binding:"min=0"`
}

type AreaResponse struct {
	ID           string `json:"id"`
	OfficeID     string `json:"office_id"`
	OfficeNumber int    `json:"office_number"`
	Number       int    `json:"number"`
	Description  string `json:"description"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
}

func NewAreaResponse(a *office.Area) AreaResponse {
	return AreaResponse{
		ID:           a.ID,
		OfficeID:     a.OfficeID,
		OfficeNumber: a.OfficeNumber,
		Number:       a.Number,
		Description:  a.Description,
		X:            a.X,
		Y:            a.Y,
	}
}

type ListRowsRequest struct {
	AreaID string `form:"area_id" binding:"omitempty,uuid"`
	Number int    `form:"number" binding:"omitempty,min=1"`
}

type CreateRowBody struct {
	AreaID      string `json:"area_id" binding:"required,uuid"`
	Number      int    `json:"number" binding:"required,min=1"`
	Description string `json:"description"`
}

type RowResponse struct {
	ID          string `json:"id"`
	AreaID      string `json:"area_id"`
	AreaNumber  int    `json:"area_number"`
	Number      int    `json:"number"`
	Description string `json:"description"`
}

func NewRowResponse(r *office.Row) RowResponse {
	return RowResponse{
		ID:          r.ID,
		AreaID:      r.AreaID,
		AreaNumber:  r.AreaNumber,
		Number:      r.Number,
		Description: r.Description,
	}
}

// LayoutResponse is the office floor plan tree.
type LayoutResponse struct {
	Office  OfficeResponse       `json:"office"`
	Columns int                  `json:"columns"`
	Rows    int                  `json:"rows"`
	Areas   []AreaLayoutResponse `json:"areas"`
}

type AreaLayoutResponse struct {
	AreaResponse
	Rows []RowLayoutResponse `json:"rows"`
}

type RowLayoutResponse struct {
	RowResponse
	Seats []SeatTagResponse `json:"seats"`
}

type SeatTagResponse struct {
	ID          string `json:"id"`
	Number      int    `json:"number"`
	Description string `json:"description"`
}

func NewLayoutResponse(l *office.Layout) LayoutResponse {
	cols, rows := l.GridSize()
	resp := LayoutResponse{
		Office:  NewOfficeResponse(l.Office),
		Columns: cols,
		Rows:    rows,
		Areas:   make([]AreaLayoutResponse, len(l.Areas)),
	}
	for i, a := range l.Areas {
		area := AreaLayoutResponse{
			AreaResponse: NewAreaResponse(&a.Area),
			Rows:         make([]RowLayoutResponse, len(a.Rows)),
		}
		for j, r := range a.Rows {
			row := RowLayoutResponse{
				RowResponse: NewRowResponse(&r.Row),
				Seats:       make([]SeatTagResponse, len(r.Seats)),
			}
			for k, s := range r.Seats {
				row.Seats[k] = SeatTagResponse{ID: s.ID, Number: s.Number, Description: s.Description}
			}
			area.Rows[j] = row
		}
		resp.Areas[i] = area
	}
	return resp
}
