// Package storage holds the uploaded PDFs. Uploads stream straight from the request body
// into the bucket; readers only ever receive presigned links.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions describe one upload. Size is the exact byte count, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo is what the bucket reports back after a write.
type ObjectInfo struct {
	Key  string
	Size int64
	ETag string
}

type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a download URL valid for expiry. A non-empty filename is
	// sent back by the store as an attachment Content-Disposition.
	PresignGet(ctx context.Context, key string, expiry time.Duration, filename string) (string, error)
	// Ready reports whether the bucket is reachable.
	Ready(ctx context.Context) error
}
