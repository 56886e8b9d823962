package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where uploaded documents live. Payslip documents,
// profile pictures and company logos all go through this interface.
type FileStorage interface {
	// Upload stores the file under path and returns the stored key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download opens the stored file for reading.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the client can fetch the file from. Expiry is
	// honored by backends that sign URLs; the local backend ignores it.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)
}
