package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	"souschef/internal/utils"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/heic", "image/heif", "image/webp"}

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrEmptyFile          = errors.New("file is empty")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, data []byte, folder string, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	// s3API is the part of the S3 client used here.
	s3API interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	}

	S3Config struct {
		Bucket    string
		Region    string
		AccessKey string
		SecretKey string
		Endpoint  string
	}

	awsS3 struct {
		client s3API
		bucket string
		region string
		// endpoint is set for S3-compatible stores; links then use path style
		endpoint string
	}
)

func LoadS3Config() S3Config {
	return S3Config{
		Bucket:    utils.GetConfig("AWS_S3_BUCKET"),
		Region:    utils.GetConfig("AWS_S3_REGION"),
		AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
		SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
		Endpoint:  utils.GetConfig("AWS_ENDPOINT"),
	}
}

func NewAwsS3(ctx context.Context, cfg S3Config) (AwsS3, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newAwsS3(client, cfg), nil
}

func newAwsS3(client s3API, cfg S3Config) *awsS3 {
	return &awsS3{
		client:   client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
	}
}

// UploadFile stores data under folder/fileName, with the extension taken from
// the sniffed content type. Types outside allowed are refused.
func (a *awsS3) UploadFile(ctx context.Context, fileName string, data []byte, folder string, allowed ...string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	mtype := mimetype.Detect(data)
	if len(allowed) > 0 && !mimetype.EqualsAny(mtype.String(), allowed...) {
		return "", fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, mtype.String())
	}

	objectKey := path.Join(folder, fileName+mtype.Extension())
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mtype.String()),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectKey, err)
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	if a.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", a.endpoint, a.bucket, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	key := strings.TrimPrefix(u.Path, "/")
	if a.endpoint != "" {
		key = strings.TrimPrefix(key, a.bucket+"/")
	}
	return key
}
