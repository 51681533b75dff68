package blob

import (
	"context"

	infraS3 "wellcore/internal/infra/blob/s3"
)

// S3Config re-exports the infra S3 configuration type within the internal tree.
type S3Config = infraS3.Config

// NewS3 constructs an S3-backed archive from the provided configuration.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) {
	return infraS3.New(ctx, cfg)
}

// OpenFromEnv constructs an S3 archive using environment variables.
func OpenFromEnv(ctx context.Context) (Store, error) {
	return infraS3.OpenFromEnv(ctx)
}
