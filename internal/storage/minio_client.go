package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/policy"
	"github.com/minio/minio-go/v7/pkg/set"

	"ethiqia/internal/config"
	"ethiqia/internal/logging"
)

// Storage keeps uploaded objects and hands back their public URL.
type Storage interface {
	Upload(ctx context.Context, objectName, contentType string, file io.Reader, size int64, meta map[string]string) (string, error)
	Delete(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinIO.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.MinIO.BucketName, err)
		}
		logging.WithComponent("storage").Info("bucket created")
	}

	if err := ensurePublicRead(ctx, client, cfg.MinIO.BucketName); err != nil {
		return nil, err
	}

	return &MinIOClient{
		client:    client,
		bucket:    cfg.MinIO.BucketName,
		publicURL: cfg.MinIO.PublicURL,
	}, nil
}

func (m *MinIOClient) Upload(ctx context.Context, objectName, contentType string, file io.Reader, size int64, meta map[string]string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: meta,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectName, err)
	}

	return ObjectURL(m.publicURL, m.bucket, objectName), nil
}

func (m *MinIOClient) Delete(ctx context.Context, objectName string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", objectName, err)
	}
	return nil
}

// ObjectURL joins the public base URL, bucket and object name.
func ObjectURL(publicURL, bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(publicURL, "/"), bucket, strings.TrimPrefix(objectName, "/"))
}

// PublicReadPolicy allows anonymous GetObject on every object in bucket so the
// URLs from ObjectURL resolve without signing. Listing stays private.
func PublicReadPolicy(bucket string) (string, error) {
	doc := policy.BucketAccessPolicy{
		Version: "2012-10-17",
		Statements: []policy.Statement{{
			Effect:    "Allow",
			Principal: policy.User{AWS: set.CreateStringSet("*")},
			Actions:   set.CreateStringSet("s3:GetObject"),
			Resources: set.CreateStringSet("arn:aws:s3:::" + bucket + "/*"),
		}},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode bucket policy: %w", err)
	}
	return string(data), nil
}

// ensurePublicRead installs PublicReadPolicy when the bucket has no policy.
// An existing policy is left alone.
func ensurePublicRead(ctx context.Context, client *minio.Client, bucket string) error {
	current, err := client.GetBucketPolicy(ctx, bucket)
	if err != nil {
		return fmt.Errorf("get policy for bucket %s: %w", bucket, err)
	}
	if current != "" {
		return nil
	}

	readPolicy, err := PublicReadPolicy(bucket)
	if err != nil {
		return err
	}
	if err := client.SetBucketPolicy(ctx, bucket, readPolicy); err != nil {
		return fmt.Errorf("set policy for bucket %s: %w", bucket, err)
	}

	logging.WithComponent("storage").Info("public read policy applied")
	return nil
}
