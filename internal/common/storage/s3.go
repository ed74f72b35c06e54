// internal/common/storage/s3.go
// Presigned photo URLs for profile media stored in S3

package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// PhotoURLSigner turns stored photo keys into fetchable URLs
type PhotoURLSigner interface {
	SignPhotoURL(key string, ttl time.Duration) (string, error)
}

// S3Signer signs photo keys against an S3 bucket
type S3Signer struct {
	svc    *s3.S3
	bucket string
}

// NewS3Signer creates a signer for the given bucket
func NewS3Signer(bucket, region string) (*S3Signer, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Signer{
		svc:    s3.New(sess),
		bucket: bucket,
	}, nil
}

// SignPhotoURL returns a presigned GET URL for a photo key.
// Keys that are already absolute URLs pass through unchanged.
func (s *S3Signer) SignPhotoURL(key string, ttl time.Duration) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", fmt.Errorf("empty photo key")
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed, nil
	}

	req, _ := s.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(trimmed),
	})

	url, err := req.Presign(ttl)
	if err != nil {
		return "", fmt.Errorf("failed to presign photo URL: %w", err)
	}
	return url, nil
}

// PassthroughSigner returns keys as-is, for local development without S3
type PassthroughSigner struct {
	baseURL string
}

// NewPassthroughSigner creates a signer that prefixes keys with a base URL
func NewPassthroughSigner(baseURL string) *PassthroughSigner {
	return &PassthroughSigner{baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *PassthroughSigner) SignPhotoURL(key string, _ time.Duration) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", fmt.Errorf("empty photo key")
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed, nil
	}
	return fmt.Sprintf("%s/uploads/%s", s.baseURL, strings.TrimLeft(trimmed, "/")), nil
}
