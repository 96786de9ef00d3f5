// Package files implements the dashboard's file operations on top of the
// storage gateway: upload validation and quota, key derivation, and listing
// enriched with media classification.
package files

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/radif/mediadrop/internal/logger"
	"github.com/radif/mediadrop/internal/media"
	"github.com/radif/mediadrop/internal/metrics"
	"github.com/radif/mediadrop/internal/storage"
)

// EnrichBatchSize bounds how many metadata lookups run at once while listing.
const EnrichBatchSize = 20

// FileItem is a stored file as the dashboard sees it.
type FileItem struct {
	Key          string     `json:"key"          example:"1f3a9c2e_holiday.png"`
	Name         string     `json:"name"         example:"1f3a9c2e_holiday.png"`
	Size         int64      `json:"size"         example:"204800"`
	ContentType  string     `json:"contentType"  example:"image/png"`
	MediaType    media.Type `json:"mediaType"    example:"image" enums:"image,video,audio,other"`
	LastModified *string    `json:"lastModified" example:"2025-03-01T12:00:00Z"`
	URL          string     `json:"url"          example:"https://cdn.example.com/1f3a9c2e_holiday.png"`
	EmbedURL     string     `json:"embedUrl"     example:"https://files.example.com/view/1f3a9c2e_holiday.png"`
}

// UploadRequest is a validated multipart upload.
type UploadRequest struct {
	Filename    string
	CustomName  string
	ContentType string
	Body        []byte
}

// Usage describes how much of the bucket limit is consumed.
type Usage struct {
	Used      int64 `json:"used"      example:"1073741824"`
	Limit     int64 `json:"limit"     example:"10737418240"`
	Remaining int64 `json:"remaining" example:"9663676416"`
	FileCount int   `json:"fileCount" example:"42"`
}

// Service contains the request-path logic for files.
type Service struct {
	gw          *storage.Gateway
	bucketLimit int64
	maxUpload   int64
	newID       func() string
}

// NewService creates a Service enforcing bucketLimit bytes in total and
// maxUpload bytes per file.
func NewService(gw *storage.Gateway, bucketLimit, maxUpload int64) *Service {
	return &Service{
		gw:          gw,
		bucketLimit: bucketLimit,
		maxUpload:   maxUpload,
		newID:       NewKeyID,
	}
}

// MaxUpload returns the per-file size cap.
func (s *Service) MaxUpload() int64 {
	return s.maxUpload
}

// Upload validates, checks the quota and stores a file.
//
// The quota check sums a fresh listing and then writes; nothing is reserved
// in between, so concurrent uploads can jointly overshoot the limit.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*storage.UploadedFile, error) {
	size := int64(len(req.Body))
	if size > s.maxUpload {
		metrics.UploadsRejected.WithLabelValues("too_large").Inc()
		return nil, &FileTooLargeError{Size: size, Max: s.maxUpload}
	}
	if size == 0 {
		metrics.UploadsRejected.WithLabelValues("empty").Inc()
		return nil, ErrEmptyFile
	}

	used, _, err := s.gw.Usage(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute usage: %w", err)
	}
	if used+size > s.bucketLimit {
		metrics.UploadsRejected.WithLabelValues("quota").Inc()
		return nil, &QuotaError{Limit: s.bucketLimit, Used: used, Size: size}
	}

	key := DeriveKey(s.newID(), req.Filename, req.CustomName)
	contentType := req.ContentType
	if contentType == "" {
		contentType = storage.DefaultContentType
	}

	res, err := s.gw.UploadFile(ctx, key, req.Body, contentType)
	if err != nil {
		return nil, err
	}

	metrics.Uploads.Inc()
	metrics.UploadedBytes.Add(float64(size))
	logger.Info().Str("key", key).Int64("size", size).Str("content_type", contentType).Msg("file uploaded")
	return res, nil
}

// List returns every file under prefix, newest first, each enriched with its
// stored content type and media type.
//
// Metadata lookups run concurrently in batches of EnrichBatchSize. An entry
// whose lookup fails is dropped from the result (logged, counted) instead of
// failing the listing. An entry that vanished between list and lookup is
// kept with the default content type.
func (s *Service) List(ctx context.Context, prefix string) ([]FileItem, error) {
	listed, err := s.gw.ListFiles(ctx, prefix)
	if err != nil {
		return nil, err
	}

	out := make([]FileItem, 0, len(listed))
	for start := 0; start < len(listed); start += EnrichBatchSize {
		batch := listed[start:min(start+EnrichBatchSize, len(listed))]
		results := make([]*FileItem, len(batch))

		// A plain Group: one failed lookup must not cancel its siblings.
		var g errgroup.Group
		for i, f := range batch {
			g.Go(func() error {
				meta, ok, err := s.gw.GetFileMetadata(ctx, f.Key)
				if err != nil {
					metrics.EnrichmentDropped.Inc()
					logger.Warn().Err(err).Str("key", f.Key).Msg("dropping file from listing")
					return nil
				}
				contentType := storage.DefaultContentType
				if ok {
					contentType = meta.ContentType
				}
				item := newFileItem(f.Key, f.Size, contentType, f.LastModified, f.URL, f.EmbedURL)
				results[i] = &item
				return nil
			})
		}
		_ = g.Wait()

		for _, item := range results {
			if item != nil {
				out = append(out, *item)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single file. ok is false when key does not exist.
func (s *Service) Get(ctx context.Context, key string) (*FileItem, bool, error) {
	meta, ok, err := s.gw.GetFileMetadata(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	item := newFileItem(key, meta.Size, meta.ContentType, meta.LastModified, s.gw.PublicURL(key), s.gw.EmbedURL(key))
	return &item, true, nil
}

// Delete removes key after checking it exists. It returns storage.ErrNotFound
// for a missing key. Check and delete are separate store calls.
func (s *Service) Delete(ctx context.Context, key string) error {
	_, ok, err := s.gw.GetFileMetadata(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return storage.ErrNotFound
	}
	if err := s.gw.DeleteFile(ctx, key); err != nil {
		return err
	}

	metrics.Deletes.Inc()
	logger.Info().Str("key", key).Msg("file deleted")
	return nil
}

// Usage reports bucket consumption against the configured limit.
func (s *Service) Usage(ctx context.Context) (*Usage, error) {
	used, count, err := s.gw.Usage(ctx)
	if err != nil {
		return nil, err
	}
	return &Usage{
		Used:      used,
		Limit:     s.bucketLimit,
		Remaining: max(0, s.bucketLimit-used),
		FileCount: count,
	}, nil
}

func newFileItem(key string, size int64, contentType string, lastModified time.Time, url, embedURL string) FileItem {
	item := FileItem{
		Key:         key,
		Name:        key[strings.LastIndexByte(key, '/')+1:],
		Size:        size,
		ContentType: contentType,
		MediaType:   media.Classify(key, contentType),
		URL:         url,
		EmbedURL:    embedURL,
	}
	if !lastModified.IsZero() {
		ts := lastModified.UTC().Format(time.RFC3339)
		item.LastModified = &ts
	}
	return item
}
