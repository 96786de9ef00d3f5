package storage

import (
	"context"
	"fmt"
)

// Options selects and configures a storage driver.
type Options struct {
	Driver    string // "minio", "s3" or "memory"
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Open returns the Bucket for opts.Driver.
func Open(ctx context.Context, opts Options) (Bucket, error) {
	switch opts.Driver {
	case "minio", "":
		region := opts.Region
		if region == "auto" {
			region = ""
		}
		return NewMinioBucket(ctx, opts.Endpoint, opts.AccessKey, opts.SecretKey, opts.Bucket, region, opts.UseSSL)
	case "s3":
		return NewS3Bucket(ctx, opts.Endpoint, opts.AccessKey, opts.SecretKey, opts.Bucket, opts.Region)
	case "memory":
		return NewMemoryBucket(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
