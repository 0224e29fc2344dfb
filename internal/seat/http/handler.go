package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/response"
	"github.com/nekogravitycat/office-seat-booking/internal/seat"
)

type Handler struct {
	service seat.Service
}

func NewHandler(service seat.Service) *Handler {
	return &Handler{service: service}
}

// List returns a page of seats, or a single seat when criteria are given.
func (h *Handler) List(c *gin.Context) {
	var req ListSeatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	if crit := req.Criteria(); !crit.IsZero() {
		s, err := h.service.FindSeat(c.Request.Context(), crit)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, NewSeatResponse(s))
		return
	}

	filter := seat.Filter{ListParams: req.ListParams, RowID: req.RowID, OfficeID: req.OfficeID}
	filter.Normalize()
	seats, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SeatResponse, len(seats))
	for i, s := range seats {
		items[i] = NewSeatResponse(s)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.ListParams, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid seat id", err)
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSeatResponse(s))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateSeatBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	s, err := h.service.Create(c.Request.Context(), seat.CreateRequest{
		RowID:       body.RowID,
		Number:      body.Number,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewSeatResponse(s))
}
