package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Get when nothing is stored at the path.
var ErrNotExist = errors.New("storage: object does not exist")

// Storage stores opaque objects under relative slash-separated paths.
type Storage interface {
	// Save writes content at path, replacing anything already there.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the object at path. The caller closes the reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object at path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
}
