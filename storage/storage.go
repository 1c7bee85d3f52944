package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Download when no object exists at the path.
var ErrNotFound = errors.New("storage: object not found")

// Storage defines the operations a backend provides.
type Storage interface {
	// Upload replaces the object at path with the contents of reader.
	Upload(ctx context.Context, path string, reader io.Reader) error

	// Download returns a reader for the object at path, or an error wrapping
	// ErrNotFound. The caller must close the returned ReadCloser.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object at path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// Exists checks whether an object exists at path.
	Exists(ctx context.Context, path string) (bool, error)
}
