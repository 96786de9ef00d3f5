package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// listPageSize is the most keys requested per listing call.
const listPageSize = 1000

// UploadedFile is returned after a successful upload.
type UploadedFile struct {
	Key         string `json:"key"         example:"1f3a9c2e_holiday.png"`
	URL         string `json:"url"         example:"https://cdn.example.com/1f3a9c2e_holiday.png"`
	EmbedURL    string `json:"embedUrl"    example:"https://files.example.com/view/1f3a9c2e_holiday.png"`
	Size        int64  `json:"size"        example:"204800"`
	ContentType string `json:"contentType" example:"image/png"`
	UploadedAt  string `json:"uploadedAt"  example:"2025-03-01T12:00:00Z"`
}

// FileListItem is one entry of a full bucket listing.
type FileListItem struct {
	Key          string
	Size         int64
	LastModified time.Time // zero when unknown
	URL          string
	EmbedURL     string
}

// FileMetadata is the result of a point lookup.
type FileMetadata struct {
	Key          string
	ContentType  string
	Size         int64
	LastModified time.Time // zero when unknown
}

// Gateway wraps a Bucket with URL derivation, exhaustive listing and usage
// accounting. It holds no cache; every call goes to the store.
type Gateway struct {
	bucket     Bucket
	publicBase string
	appURL     string
	now        func() time.Time
}

// NewGateway creates a Gateway. publicBase is the direct object URL prefix,
// appURL the dashboard origin used for embed links.
func NewGateway(bucket Bucket, publicBase, appURL string) *Gateway {
	return &Gateway{
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		appURL:     strings.TrimRight(appURL, "/"),
		now:        time.Now,
	}
}

// WithClock replaces the time source used for upload timestamps.
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	g.now = now
	return g
}

// UploadFile stores body under key. The reported size is len(body), never a
// client-declared value. The write is not transactional: a failure may
// still leave the object in the bucket.
func (g *Gateway) UploadFile(ctx context.Context, key string, body []byte, contentType string) (*UploadedFile, error) {
	if contentType == "" {
		contentType = DefaultContentType
	}
	uploadedAt := g.now().UTC().Format(time.RFC3339)

	meta := map[string]string{
		MetaUploadedAt:          uploadedAt,
		MetaOriginalContentType: contentType,
	}
	if err := g.bucket.PutObject(ctx, key, bytes.NewReader(body), int64(len(body)), contentType, meta); err != nil {
		return nil, fmt.Errorf("put object %q: %w", key, err)
	}

	return &UploadedFile{
		Key:         key,
		URL:         g.PublicURL(key),
		EmbedURL:    g.EmbedURL(key),
		Size:        int64(len(body)),
		ContentType: contentType,
		UploadedAt:  uploadedAt,
	}, nil
}

// DeleteFile removes key unconditionally.
func (g *Gateway) DeleteFile(ctx context.Context, key string) error {
	if err := g.bucket.DeleteObject(ctx, key); err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

// ListFiles pages through every object under prefix and returns them newest
// first. The store gives no ordering across pages, so the whole listing is
// collected before sorting. Objects changed mid-listing may or may not appear.
func (g *Gateway) ListFiles(ctx context.Context, prefix string) ([]FileListItem, error) {
	var (
		files []FileListItem
		token string
	)
	for {
		page, err := g.bucket.ListObjects(ctx, prefix, token, listPageSize)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Objects {
			if obj.Key == "" {
				continue
			}
			files = append(files, FileListItem{
				Key:          obj.Key,
				Size:         obj.Size,
				LastModified: obj.LastModified,
				URL:          g.PublicURL(obj.Key),
				EmbedURL:     g.EmbedURL(obj.Key),
			})
		}
		if !page.IsTruncated || page.NextContinuationToken == "" {
			break
		}
		token = page.NextContinuationToken
	}

	sort.SliceStable(files, func(i, j int) bool {
		return unixOrZero(files[i].LastModified) > unixOrZero(files[j].LastModified)
	})
	return files, nil
}

// GetFileMetadata looks up a single key. ok is false when the object does
// not exist; err is reserved for store failures.
func (g *Gateway) GetFileMetadata(ctx context.Context, key string) (meta *FileMetadata, ok bool, err error) {
	info, err := g.bucket.HeadObject(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("head object %q: %w", key, err)
	}

	ct := info.ContentType
	if ct == "" {
		ct = DefaultContentType
	}
	return &FileMetadata{
		Key:          key,
		ContentType:  ct,
		Size:         info.Size,
		LastModified: info.LastModified,
	}, true, nil
}

// Usage returns the summed size of every object in the bucket.
func (g *Gateway) Usage(ctx context.Context) (total int64, count int, err error) {
	files, err := g.ListFiles(ctx, "")
	if err != nil {
		return 0, 0, err
	}
	for _, f := range files {
		total += f.Size
	}
	return total, len(files), nil
}

// PublicURL returns the direct, browser-accessible URL of key.
func (g *Gateway) PublicURL(key string) string {
	return g.publicBase + "/" + key
}

// EmbedURL returns the dashboard view page for key.
func (g *Gateway) EmbedURL(key string) string {
	return g.appURL + "/view/" + url.PathEscape(key)
}

// unixOrZero maps a missing timestamp to the epoch.
func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}
