package source

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/autopeer-io/voltura/internal/configurator/core"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
)

var _ core.CatalogSource = (*S3)(nil)

// S3 reads the catalog from one object.
type S3 struct {
	client     *minio.Client
	bucketName string
	object     string
}

func NewS3(client *minio.Client, bucketName, object string) *S3 {
	return &S3{
		client:     client,
		bucketName: bucketName,
		object:     object,
	}
}

func (s *S3) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucketName, s.object)
}

func (s *S3) Load(ctx context.Context) ([]model.Vehicle, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog object: %w", err)
	}
	return Decode(data)
}
