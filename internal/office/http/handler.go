package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	filehttp "github.com/nekogravitycat/office-seat-booking/internal/file/http"
	"github.com/nekogravitycat/office-seat-booking/internal/office"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/response"
)

type Handler struct {
	service           office.Service
	fileHandler       *filehttp.Handler
	floorPlanMaxBytes int64
}

func NewHandler(service office.Service, fileHandler *filehttp.Handler, floorPlanMaxBytes int64) *Handler {
	return &Handler{
		service:           service,
		fileHandler:       fileHandler,
		floorPlanMaxBytes: floorPlanMaxBytes,
	}
}

// ListOffices returns a page of offices, or the single office matching ?number=.
func (h *Handler) ListOffices(c *gin.Context) {
	var req ListOfficesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	if req.Number != 0 {
		o, err := h.service.FindOffice(c.Request.Context(), office.OfficeCriteria{Number: req.Number})
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, NewOfficeResponse(o))
		return
	}

	req.Normalize()
	offices, total, err := h.service.ListOffices(c.Request.Context(), req.ListParams)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]OfficeResponse, len(offices))
	for i, o := range offices {
		items[i] = NewOfficeResponse(o)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.ListParams, total))
}

func (h *Handler) GetOffice(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid office id", err)
		return
	}

	o, err := h.service.GetOffice(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewOfficeResponse(o))
}

func (h *Handler) CreateOffice(c *gin.Context) {
	var body CreateOfficeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	o, err := h.service.CreateOffice(c.Request.Context(), office.CreateOfficeRequest{
		Number: body.Number,
		Name:   body.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewOfficeResponse(o))
}

func (h *Handler) DeleteOffice(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid office id", err)
		return
	}

	if err := h.service.DeleteOffice(c.Request.Context(), office.OfficeCriteria{ID: uri.ID}); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteOfficeByNumber handles DELETE /offices?number=N.
func (h *Handler) DeleteOfficeByNumber(c *gin.Context) {
	var req DeleteOfficeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "office number is required", err)
		return
	}

	if err := h.service.DeleteOffice(c.Request.Context(), office.OfficeCriteria{Number: req.Number}); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Layout(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid office id", err)
		return
	}

	l, err := h.service.Layout(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewLayoutResponse(l))
}

// UploadFloorPlan stores a floor plan image and links it to the office.
func (h *Handler) UploadFloorPlan(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid office id", err)
		return
	}

	// Reject early so no file is stored for a missing office.
	if _, err := h.service.GetOffice(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.fileHandler.HandleFileUpload(c, filehttp.FileUploadConfig{
		FormFieldName: "file",
		MaxSizeBytes:  h.floorPlanMaxBytes,
		AllowedTypes:  filehttp.FloorPlanImageTypes,
		RequireImage:  true,
		AfterUpload: func(ctx context.Context, fileID string) error {
			_, err := h.service.SetFloorPlan(ctx, uri.ID, fileID)
			return err
		},
	})
}

func (h *Handler) ListAreas(c *gin.Context) {
	var req ListAreasRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	areas, err := h.service.FindAreas(c.Request.Context(), office.AreaFilter{
		OfficeID:     req.OfficeID,
		OfficeNumber: req.OfficeNumber,
		Number:       req.Number,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AreaResponse, len(areas))
	for i, a := range areas {
		items[i] = NewAreaResponse(a)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) GetArea(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid area id", err)
		return
	}

	a, err := h.service.GetArea(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAreaResponse(a))
}

func (h *Handler) CreateArea(c *gin.Context) {
	var body CreateAreaBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	a, err := h.service.CreateArea(c.Request.Context(), office.CreateAreaRequest{
		OfficeID:    body.OfficeID,
		Number:      body.Number,
		Description: body.Description,
		X:           body.X,
		Y:           body.Y,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewAreaResponse(a))
}

func (h *Handler) ListRows(c *gin.Context) {
	var req ListRowsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	rows, err := h.service.FindRows(c.Request.Context(), office.RowFilter{AreaID: req.AreaID, Number: req.Number})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RowResponse, len(rows))
	for i, r := range rows {
		items[i] = NewRowResponse(r)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) GetRow(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid row id", err)
		return
	}

	r, err := h.service.GetRow(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRowResponse(r))
}

func (h *Handler) CreateRow(c *gin.Context) {
	var body CreateRowBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	r, err := h.service.CreateRow(c.Request.Context(), office.CreateRowRequest{
		AreaID:      body.AreaID,
		Number:      body.Number,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRowResponse(r))
}
