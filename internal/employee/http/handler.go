package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/office-seat-booking/internal/employee"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/response"
)

type Handler struct {
	service employee.Service
}

func NewHandler(service employee.Service) *Handler {
	return &Handler{service: service}
}

// List returns a page of employees, or a single employee when criteria are given.
func (h *Handler) List(c *gin.Context) {
	var req ListEmployeesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	if crit := req.Criteria(); !crit.IsZero() {
		e, err := h.service.FindEmployee(c.Request.Context(), crit)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, NewEmployeeResponse(e))
		return
	}

	req.Normalize()
	employees, total, err := h.service.List(c.Request.Context(), req.ListParams)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		items[i] = NewEmployeeResponse(e)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.ListParams, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid employee id", err)
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewEmployeeResponse(e))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateEmployeeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	e, err := h.service.Create(c.Request.Context(), employee.CreateRequest{
		Email:     body.Email,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewEmployeeResponse(e))
}
