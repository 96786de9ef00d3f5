// Package storage talks to the S3-compatible bucket that holds every uploaded
// file. Bucket is the thin per-request driver (MinIO, AWS SDK or in-memory);
// Gateway builds the dashboard operations on top of it.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// DefaultContentType is reported for objects without a stored content type.
const DefaultContentType = "application/octet-stream"

// Metadata keys written with every upload.
const (
	MetaUploadedAt          = "uploaded-at"
	MetaOriginalContentType = "original-content-type"
)

// ErrNotFound is returned by Bucket.HeadObject for a missing key.
var ErrNotFound = errors.New("object not found")

// ObjectInfo describes one stored object as the bucket reports it.
// A zero LastModified means the store did not report one.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Page is one response of a paginated listing.
type Page struct {
	Objects               []ObjectInfo
	IsTruncated           bool
	NextContinuationToken string
}

// Bucket is the interface every storage driver implements. Each method maps
// to a single request against the store; no call retries.
type Bucket interface {
	// PutObject writes body under key, replacing any existing object.
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string, metadata map[string]string) error
	// DeleteObject removes key. Deleting a missing key is not an error.
	DeleteObject(ctx context.Context, key string) error
	// ListObjects returns up to maxKeys objects under prefix, starting at
	// continuationToken ("" for the first page).
	ListObjects(ctx context.Context, prefix, continuationToken string, maxKeys int) (*Page, error)
	// HeadObject returns metadata for key, or ErrNotFound.
	HeadObject(ctx context.Context, key string) (*ObjectInfo, error)
}
