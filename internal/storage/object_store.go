// Package storage wraps the S3-compatible object store that holds uploaded
// cover images. It is deliberately a black box for the rest of the
// application: put bytes in, get a public URL back, delete by URL.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "github.com/mini4/book-catalog/internal/config"
)

// ObjectStore uploads and deletes image objects in a single bucket. It
// works against any S3-compatible endpoint; in development that is MinIO.
type ObjectStore struct {
	client    *s3.Client
	bucket    string
	urlPrefix string
}

// NewObjectStore builds the S3 client with static credentials and the
// configured base endpoint. Path-style addressing is required for MinIO.
func NewObjectStore(ctx context.Context, cfg appconfig.Config) (*ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})
	prefix := cfg.S3PublicURL
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &ObjectStore{client: client, bucket: cfg.S3Bucket, urlPrefix: prefix}, nil
}

// Upload stores the content under a fresh unique object name derived from
// the original filename's extension and returns the public URL.
func (o *ObjectStore) Upload(ctx context.Context, originalFilename, contentType string, size int64, body io.Reader) (string, error) {
	objectName := ObjectName(originalFilename)
	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(o.bucket),
		Key:           aws.String(objectName),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return o.urlPrefix + objectName, nil
}

// Delete removes the object behind the given image URL. An empty resolved
// object name is a no-op.
func (o *ObjectStore) Delete(ctx context.Context, imageURL string) error {
	objectName := objectNameFromURL(o.urlPrefix, imageURL)
	if objectName == "" {
		return nil
	}
	_, err := o.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(objectName),
	})
	return err
}

// ObjectName builds a unique object name: a random UUID plus the original
// file extension, so the stored name still hints at the image format.
func ObjectName(originalFilename string) string {
	return uuid.NewString() + path.Ext(originalFilename)
}

// objectNameFromURL resolves the object name from a public image URL:
// strip the known prefix when present, otherwise fall back to the last
// path segment.
func objectNameFromURL(urlPrefix, imageURL string) string {
	if imageURL == "" {
		return ""
	}
	if strings.HasPrefix(imageURL, urlPrefix) {
		return strings.TrimPrefix(imageURL, urlPrefix)
	}
	if i := strings.LastIndex(imageURL, "/"); i >= 0 && i < len(imageURL)-1 {
		return imageURL[i+1:]
	}
	return imageURL
}
