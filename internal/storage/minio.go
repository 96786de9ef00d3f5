package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/radif/mediadrop/internal/logger"
)

// MinioBucket implements Bucket using a MinIO (or any S3-compatible) backend.
// Listing goes through minio.Core so pagination stays under our control
// instead of the client's internal channel iterator.
type MinioBucket struct {
	core   *minio.Core
	bucket string
}

// NewMinioBucket creates a MinIO client, ensures the bucket exists with a
// public-read policy, and returns a ready-to-use MinioBucket.
func NewMinioBucket(ctx context.Context, endpoint, accessKey, secretKey, bucket, region string, useSSL bool) (*MinioBucket, error) {
	core, err := minio.NewCore(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := core.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := core.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
		logger.Info().Str("bucket", bucket).Msg("storage: created bucket")
	}

	if err := core.SetBucketPolicy(ctx, bucket, publicReadPolicy(bucket)); err != nil {
		return nil, fmt.Errorf("set bucket policy: %w", err)
	}

	return &MinioBucket{core: core, bucket: bucket}, nil
}

// PutObject implements Bucket. size must be the exact byte count.
func (s *MinioBucket) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string, metadata map[string]string) error {
	_, err := s.core.Client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	return err
}

// DeleteObject implements Bucket.
func (s *MinioBucket) DeleteObject(ctx context.Context, key string) error {
	return s.core.Client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// ListObjects implements Bucket with a single ListObjectsV2 request.
func (s *MinioBucket) ListObjects(ctx context.Context, prefix, continuationToken string, maxKeys int) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := s.core.ListObjectsV2(s.bucket, prefix, "", continuationToken, "", maxKeys)
	if err != nil {
		return nil, err
	}

	page := &Page{
		IsTruncated:           res.IsTruncated,
		NextContinuationToken: res.NextContinuationToken,
		Objects:               make([]ObjectInfo, 0, len(res.Contents)),
	}
	for _, obj := range res.Contents {
		page.Objects = append(page.Objects, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})
	}
	return page, nil
}

// HeadObject implements Bucket.
func (s *MinioBucket) HeadObject(ctx context.Context, key string) (*ObjectInfo, error) {
	info, err := s.core.Client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
		Metadata:     map[string]string(info.UserMetadata),
	}, nil
}

func isMinioNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey"
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
