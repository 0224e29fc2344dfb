package file

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, apperror.KindNotFound, "file not found")
	ErrThumbnailNotFound = apperror.New(http.StatusNotFound, apperror.KindNotFound, "thumbnail not available for this file")
	ErrTooLarge          = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "file is too large")
	ErrTypeNotAllowed    = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "file type is not allowed")
	ErrNotAnImage        = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "file is not a readable image")
)

// File is stored binary content, in practice an office floor plan image.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the API path serving the file content.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the API path serving the file thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
