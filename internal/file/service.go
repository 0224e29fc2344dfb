package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/office-seat-booking/internal/logging"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/storage"
)

// Thumbnail box for floor plan previews.
const (
	ThumbnailWidth  = 400
	ThumbnailHeight = 400
)

// UploadInput describes one multipart upload and the limits it must respect.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	UserID       string
	MaxSizeBytes int64    // 0 means no limit
	AllowedTypes []string // empty allows any type
	// RequireImage rejects content the image decoder cannot read and always
	// produces a thumbnail.
	RequireImage bool
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*File, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*File, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	now     func() time.Time
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		now:     time.Now,
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	header := in.FileHeader
	if in.MaxSizeBytes > 0 && header.Size > in.MaxSizeBytes {
		return nil, ErrTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if len(in.AllowedTypes) > 0 && !slices.Contains(in.AllowedTypes, contentType) {
		return nil, ErrTypeNotAllowed
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	// Reading one byte past the limit catches a lying Size header.
	reader := io.Reader(src)
	if in.MaxSizeBytes > 0 {
		reader = io.LimitReader(src, in.MaxSizeBytes+1)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file failed: %w", err)
	}
	if in.MaxSizeBytes > 0 && int64(len(content)) > in.MaxSizeBytes {
		return nil, ErrTooLarge
	}

	isImage := strings.HasPrefix(contentType, "image/")
	if in.RequireImage {
		if _, _, err := s.imgProc.Bounds(bytes.NewReader(content)); err != nil {
			return nil, ErrNotAnImage
		}
		isImage = true
	}

	fileID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// upload/ab/<uuid>.ext
	shard := fileID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("save file to storage failed: %w", err)
	}

	log := logging.FromContext(ctx)

	var thumbnailPath *string
	if isImage {
		thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(content), ThumbnailWidth, ThumbnailHeight)
		if err != nil {
			log.Warn("thumbnail generation failed", slog.String("file_id", fileID), slog.Any("error", err))
		} else {
			tPath := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
			if err := s.storage.Save(ctx, tPath, thumb); err != nil {
				log.Warn("thumbnail save failed", slog.String("file_id", fileID), slog.Any("error", err))
			} else {
				thumbnailPath = &tPath
			}
		}
	}

	f := &File{
		ID:            fileID,
		UserID:        in.UserID,
		Filename:      filepath.Base(header.Filename),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(content)),
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.removeObjects(ctx, f)
		return nil, err
	}

	log.Info("file uploaded", slog.String("file_id", f.ID), slog.Int64("size", f.Size))
	return f, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.removeObjects(ctx, f)
	return s.repo.Delete(ctx, id)
}

// removeObjects deletes stored content on a best-effort basis.
func (s *service) removeObjects(ctx context.Context, f *File) {
	log := logging.FromContext(ctx)
	if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
		log.Warn("file content cleanup failed", slog.String("file_id", f.ID), slog.Any("error", err))
	}
	if f.ThumbnailPath != nil {
		if err := s.storage.Delete(ctx, *f.ThumbnailPath); err != nil {
			log.Warn("thumbnail cleanup failed", slog.String("file_id", f.ID), slog.Any("error", err))
		}
	}
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve file from storage failed: %w", err)
	}
	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if f.ThumbnailPath == nil {
		return nil, nil, ErrThumbnailNotFound
	}

	stream, err := s.storage.Get(ctx, *f.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve thumbnail from storage failed: %w", err)
	}
	return stream, f, nil
}
