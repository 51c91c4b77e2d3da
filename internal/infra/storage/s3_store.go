package storage

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store 以 bucket + prefix 存放照片
type S3Store struct {
	client s3API
	bucket string
	prefix string
}

var _ PhotoStore = (*S3Store)(nil)

// NewS3Store endpoint 非空時使用 path style (minio, localstack)
func NewS3Store(ctx context.Context, region, endpoint, bucket, prefix string) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3StoreWithClient(client, bucket, prefix), nil
}

func newS3StoreWithClient(client s3API, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *S3Store) key(name string) *string {
	return aws.String(s.prefix + name)
}

func (s *S3Store) Store(ctx context.Context, data []byte, originalName string) (string, error) {
	ext, err := ValidateUpload(data, originalName)
	if err != nil {
		return "", err
	}

	name := newFileName(ext)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           s.key(name),
		ContentType:   aws.String(ContentType(name)),
		ContentLength: aws.Int64(int64(len(data))),
		Body:          bytes.NewReader(data),
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

func (s *S3Store) Retrieve(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateFileName(name); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    s.key(name),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Store) Remove(ctx context.Context, name string) (bool, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil || !exists {
		return false, err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    s.key(name),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *S3Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateFileName(name); err != nil {
		return false, err
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    s.key(name),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isS3NotFound(err error) bool {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}
