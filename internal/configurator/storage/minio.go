package storage

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/autopeer-io/voltura/internal/configurator/core"
	"github.com/autopeer-io/voltura/pkg/log"
	"github.com/autopeer-io/voltura/pkg/options"
)

var _ core.KeyValueStore = (*MinIO)(nil)

// NewMinIOClient builds an S3 client from opts. It is shared by the s3
// catalog source and the s3 store.
func NewMinIOClient(opts *options.S3Options) (*minio.Client, error) {
	transport, err := minio.DefaultTransport(opts.UseSSL)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 transport: %w", err)
	}
	if opts.InsecureSkipVerify {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure:    opts.UseSSL,
		Region:    opts.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return client, nil
}

// IsNotFound reports whether err means the object does not exist.
func IsNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}

// MinIO stores each key as one object "<prefix><key>.json".
type MinIO struct {
	client     *minio.Client
	bucketName string
	prefix     string
}

func NewMinIO(client *minio.Client, bucketName, prefix string) *MinIO {
	return &MinIO{
		client:     client,
		bucketName: bucketName,
		prefix:     prefix,
	}
}

// CheckBucket creates the bucket if it does not exist yet.
func (m *MinIO) CheckBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		log.Info("Bucket does not exist, creating...", "bucket", m.bucketName)
		if err := m.client.MakeBucket(ctx, m.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

func (m *MinIO) objectName(key string) string {
	return path.Join(m.prefix, key+".json")
}

func (m *MinIO) Get(ctx context.Context, key string) ([]byte, bool, error) {
	obj, err := m.client.GetObject(ctx, m.bucketName, m.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get object: %w", err)
	}
	defer obj.Close()

	// GetObject is lazy; a missing object surfaces on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read object: %w", err)
	}
	return data, true, nil
}

func (m *MinIO) Put(ctx context.Context, key string, value []byte) error {
	_, err := m.client.PutObject(ctx, m.bucketName, m.objectName(key),
		bytes.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}
