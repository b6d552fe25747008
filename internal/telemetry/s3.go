package telemetry

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectWriter buffers one object and uploads it on Close.
type ObjectWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

// ObjectStore creates writers for a remote bucket.
type ObjectStore interface {
	NewWriter(bucket, key string) (ObjectWriter, error)
}

type S3Store struct {
	client *s3.Client
}

func NewS3Store(region string) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &S3Store{client: s3.NewFromConfig(cfg)}, nil
}

func (s *S3Store) NewWriter(bucket, key string) (ObjectWriter, error) {
	return &s3Writer{client: s.client, bucket: bucket, key: key}, nil
}

type s3Writer struct {
	client *s3.Client
	bucket string
	key    string
	buffer bytes.Buffer
}

func (w *s3Writer) Write(data []byte) (int, error) {
	return w.buffer.Write(data)
}

func (w *s3Writer) Close() error {
	_, err := w.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buffer.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", w.bucket, w.key, err)
	}
	return nil
}
