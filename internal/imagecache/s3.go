package imagecache

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Signer mints presigned GET URLs against an S3-compatible object store.
type S3Signer struct {
	presign *s3.PresignClient
}

func NewS3Signer(client *s3.Client) *S3Signer {
	return &S3Signer{presign: s3.NewPresignClient(client)}
}

func (s *S3Signer) SignURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error) {
	out, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}
	return out.URL, nil
}
