package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/office-seat-booking/internal/auth"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/response"
	"github.com/nekogravitycat/office-seat-booking/internal/scheduled"
)

type Handler struct {
	service scheduled.Service
}

func NewHandler(service scheduled.Service) *Handler {
	return &Handler{service: service}
}

// List searches reservations. An id query returns one object instead of a list.
func (h *Handler) List(c *gin.Context) {
	var req FindScheduledRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	crit := req.Criteria()
	today := h.service.Today()

	if crit.Query().Kind == scheduled.QueryByID {
		r, err := h.service.GetByID(c.Request.Context(), crit.ID)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, NewReservationResponse(r, today))
		return
	}

	found, err := h.service.Find(c.Request.Context(), crit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReservationResponse, len(found))
	for i, r := range found {
		items[i] = NewReservationResponse(r, today)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.LookupIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid scheduled seat id", err)
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r, h.service.Today()))
}

func (h *Handler) Create(c *gin.Context) {
	var body WriteScheduledBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), body.WriteRequest(auth.GetEmployeeID(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewReservationResponse(r, h.service.Today()))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.LookupIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid scheduled seat id", err)
		return
	}

	var body WriteScheduledBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	r, err := h.service.Update(c.Request.Context(), uri.ID, body.WriteRequest(auth.GetEmployeeID(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r, h.service.Today()))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.LookupIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid scheduled seat id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
