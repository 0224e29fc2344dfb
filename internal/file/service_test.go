package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/office-seat-booking/internal/pkg/storage"
)

type memRepo struct {
	files map[string]*File
	fail  error
}

func (r *memRepo) Create(_ context.Context, f *File) error {
	if r.fail != nil {
		return r.fail
	}
	r.files[f.ID] = f
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*File, error) {
	if f, ok := r.files[id]; ok {
		return f, nil
	}
	return nil, ErrNotFound
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	delete(r.files, id)
	return nil
}

func newTestService(t *testing.T) (Service, *memRepo, string) {
	t.Helper()
	base := t.TempDir()
	store, err := storage.NewLocalStorage(base)
	require.NoError(t, err)
	repo := &memRepo{files: map[string]*File{}}
	return NewService(repo, store), repo, base
}

func countObjects(t *testing.T, base string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(base, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

// formFile builds a multipart.FileHeader the way gin's c.FormFile would return it.
func formFile(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadFloorPlan(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	f, err := svc.Upload(ctx, UploadInput{
		FileHeader:   formFile(t, "floor-3.png", "image/png", pngBytes(t, 1200, 800)),
		UserID:       "user-1",
		MaxSizeBytes: 1 << 20,
		AllowedTypes: []string{"image/png", "image/jpeg"},
		RequireImage: true,
	})
	require.NoError(t, err)
	assert.Contains(t, repo.files, f.ID)
	assert.Equal(t, "floor-3.png", f.Filename)
	require.NotNil(t, f.ThumbnailPath)

	rc, got, err := svc.DownloadThumbnail(ctx, f.ID)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, f.ID, got.ID)

	cfg, _, err := image.DecodeConfig(rc)
	require.NoError(t, err)
	assert.Equal(t, ThumbnailWidth, cfg.Width)
	assert.LessOrEqual(t, cfg.Height, ThumbnailHeight)
}

func TestUploadRejects(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, UploadInput{
		FileHeader:   formFile(t, "big.png", "image/png", pngBytes(t, 50, 50)),
		MaxSizeBytes: 10,
	})
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = svc.Upload(ctx, UploadInput{
		FileHeader:   formFile(t, "plan.pdf", "application/pdf", []byte("%PDF-1.4")),
		AllowedTypes: []string{"image/png"},
	})
	assert.ErrorIs(t, err, ErrTypeNotAllowed)

	_, err = svc.Upload(ctx, UploadInput{
		FileHeader:   formFile(t, "fake.png", "image/png", []byte("not an image")),
		RequireImage: true,
	})
	assert.ErrorIs(t, err, ErrNotAnImage)

	assert.Empty(t, repo.files)
}

func TestUploadCleansUpWhenRecordFails(t *testing.T) {
	svc, repo, base := newTestService(t)
	repo.fail = assert.AnError

	_, err := svc.Upload(context.Background(), UploadInput{
		FileHeader: formFile(t, "plan.png", "image/png", pngBytes(t, 20, 20)),
	})
	require.ErrorIs(t, err, assert.AnError)

	assert.Empty(t, repo.files)
	assert.Zero(t, countObjects(t, base))
}

func TestDownloadWithoutThumbnail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	f, err := svc.Upload(ctx, UploadInput{
		FileHeader: formFile(t, "notes.txt", "text/plain", []byte("hello")),
	})
	require.NoError(t, err)
	assert.Nil(t, f.ThumbnailPath)

	rc, _, err := svc.Download(ctx, f.ID)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(content))

	_, _, err = svc.DownloadThumbnail(ctx, f.ID)
	assert.ErrorIs(t, err, ErrThumbnailNotFound)

	require.NoError(t, svc.Delete(ctx, f.ID))
	_, _, err = svc.Download(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
