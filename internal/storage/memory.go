package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryBucket is a process-local Bucket. It backs the "memory" driver for
// local development and serves as the store in tests.
type MemoryBucket struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	now     func() time.Time
}

type memoryObject struct {
	data         []byte
	contentType  string
	lastModified time.Time
	metadata     map[string]string
}

// NewMemoryBucket creates an empty in-memory bucket.
func NewMemoryBucket() *MemoryBucket {
	return &MemoryBucket{
		objects: make(map[string]memoryObject),
		now:     time.Now,
	}
}

// WithClock replaces the time source used for LastModified.
func (b *MemoryBucket) WithClock(now func() time.Time) *MemoryBucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
	return b
}

// PutObject implements Bucket.
func (b *MemoryBucket) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string, metadata map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if size >= 0 && int64(len(data)) != size {
		return fmt.Errorf("short body: got %d bytes, want %d", len(data), size)
	}

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = memoryObject{
		data:         data,
		contentType:  contentType,
		lastModified: b.now(),
		metadata:     meta,
	}
	return nil
}

// DeleteObject implements Bucket.
func (b *MemoryBucket) DeleteObject(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

// ListObjects implements Bucket. Keys come back in lexical order, like S3;
// the continuation token is the last key of the previous page.
func (b *MemoryBucket) ListObjects(ctx context.Context, prefix, continuationToken string, maxKeys int) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxKeys <= 0 {
		maxKeys = listPageSize
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		if strings.HasPrefix(k, prefix) && k > continuationToken {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	page := &Page{}
	if len(keys) > maxKeys {
		keys = keys[:maxKeys]
		page.IsTruncated = true
		page.NextContinuationToken = keys[len(keys)-1]
	}
	for _, k := range keys {
		page.Objects = append(page.Objects, b.objects[k].info(k))
	}
	return page, nil
}

// HeadObject implements Bucket.
func (b *MemoryBucket) HeadObject(ctx context.Context, key string) (*ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, ok := b.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	info := obj.info(key)
	return &info, nil
}

// Object returns a copy of the stored bytes of key.
func (b *MemoryBucket) Object(key string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	obj, ok := b.objects[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), obj.data...), true
}

func (o memoryObject) info(key string) ObjectInfo {
	meta := make(map[string]string, len(o.metadata))
	for k, v := range o.metadata {
		meta[k] = v
	}
	return ObjectInfo{
		Key:          key,
		Size:         int64(len(o.data)),
		ContentType:  o.contentType,
		LastModified: o.lastModified,
		Metadata:     meta,
	}
}
