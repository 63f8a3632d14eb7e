// Package storage holds the blob stores that keep uploaded file contents.
// Keys are slash-separated relative paths such as "42/report.pdf".
package storage

import (
	"context"
	"io"
)

// BlobStore stores bytes under a key and returns them by key. Get reports a
// missing key as common.ErrorNotFound. Delete of a missing key is not an error.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
