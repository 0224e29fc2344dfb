package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/office-seat-booking/internal/auth"
	"github.com/nekogravitycat/office-seat-booking/internal/file"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/response"
)

// FileUploadConfig configures HandleFileUpload.
type FileUploadConfig struct {
	FormFieldName string // defaults to "file"
	MaxSizeBytes  int64
	AllowedTypes  []string
	RequireImage  bool
	// AfterUpload links the stored file to its owner entity. A failure
	// deletes the upload again.
	AfterUpload func(ctx context.Context, fileID string) error
}

// FloorPlanImageTypes are the content types accepted for floor plans.
var FloorPlanImageTypes = []string{"image/png", "image/jpeg", "image/gif"}

// HandleFileUpload stores the multipart file, runs the after-upload hook and
// writes the upload response.
func (h *Handler) HandleFileUpload(c *gin.Context, config FileUploadConfig) {
	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		response.BadRequest(c, fieldName+" is required", err)
		return
	}

	f, err := h.fileService.Upload(c.Request.Context(), file.UploadInput{
		FileHeader:   fileHeader,
		UserID:       auth.GetUserID(c),
		MaxSizeBytes: config.MaxSizeBytes,
		AllowedTypes: config.AllowedTypes,
		RequireImage: config.RequireImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if config.AfterUpload != nil {
		if err := config.AfterUpload(c.Request.Context(), f.ID); err != nil {
			_ = h.fileService.Delete(c.Request.Context(), f.ID)
			response.Error(c, err)
			return
		}
	}

	var thumbURL *string
	if f.ThumbnailPath != nil {
		t := file.ThumbnailURL(f.ID)
		thumbURL = &t
	}

	c.JSON(http.StatusOK, FileUploadResponse{
		Message:      "file uploaded successfully",
		FileID:       f.ID,
		URL:          file.FileURL(f.ID),
		ThumbnailURL: thumbURL,
	})
}
