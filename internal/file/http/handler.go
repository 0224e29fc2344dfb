package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/office-seat-booking/internal/file"
	"github.com/nekogravitycat/office-seat-booking/internal/logging"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/response"
)

type Handler struct {
	fileService file.Service
}

func NewHandler(fileService file.Service) *Handler {
	return &Handler{fileService: fileService}
}

// ServeFile streams the file content.
func (h *Handler) ServeFile(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid file id", err)
		return
	}

	stream, info, err := h.fileService.Download(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	h.stream(c, stream, info.ContentType, info.Filename)
}

// ServeThumbnail streams the JPEG preview of a file.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid file id", err)
		return
	}

	stream, info, err := h.fileService.DownloadThumbnail(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	h.stream(c, stream, "image/jpeg", info.Filename+"_thumb.jpg")
}

func (h *Handler) stream(c *gin.Context, content io.Reader, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "inline; filename=\""+filename+"\"")
	c.Status(http.StatusOK)

	// Headers are already sent, so a copy failure can only be logged.
	if _, err := io.Copy(c.Writer, content); err != nil {
		logging.FromContext(c.Request.Context()).Warn("stream file failed", slog.Any("error", err))
	}
}
