package storage

import (
	"bytes"
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/errors"
)

// Uploader writes artifacts to an S3 bucket.
type Uploader struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewS3Uploader loads the default AWS configuration (environment, shared
// config, instance role) and returns an uploader for bucket. An empty
// region keeps the configured one.
func NewS3Uploader(ctx context.Context, bucket, prefix, region string) (*Uploader, error) {
	if bucket == "" {
		return nil, errors.New(errors.ErrCodeInvalidOption, "s3 bucket is required")
	}
	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load aws config")
	}
	return NewUploader(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// NewUploader returns an uploader using client.
func NewUploader(client manager.UploadAPIClient, bucket, prefix string) *Uploader {
	return &Uploader{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
	}
}

// Upload stores data as <prefix>/<name> and returns its s3:// URI.
func (u *Uploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if err := errors.ValidatePath(name); err != nil {
		return "", err
	}
	key := path.Join(u.prefix, name)
	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNetwork, err, "upload s3://%s/%s", u.bucket, key)
	}
	return "s3://" + u.bucket + "/" + key, nil
}

// ContentType returns the MIME type of an output format.
func ContentType(format string) string {
	switch format {
	case dataset.FormatSVG:
		return "image/svg+xml"
	case dataset.FormatJSON:
		return "application/json"
	case dataset.FormatMsgpack:
		return "application/vnd.msgpack"
	case dataset.FormatPNG:
		return "image/png"
	case dataset.FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}
