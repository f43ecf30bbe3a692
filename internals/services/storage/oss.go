// file: internals/services/storage/oss.go
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStore stores blobs in an Aliyun OSS bucket. Selected with BLOB_DRIVER=oss.
type OSSStore struct {
	bucket    *oss.Bucket
	publicURL string
}

func NewOSSStore(endpoint, accessKeyID, accessKeySecret, bucketName string) (*OSSStore, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %q: %w", bucketName, err)
	}
	return &OSSStore{
		bucket:    bucket,
		publicURL: fmt.Sprintf("https://%s.%s", bucketName, strings.TrimPrefix(endpoint, "https://")),
	}, nil
}

func (s *OSSStore) Put(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := ObjectKey(dir, filename)
	opts := []oss.Option{oss.ContentType(contentType)}
	if err := s.bucket.PutObject(key, r, opts...); err != nil {
		return "", err
	}
	return s.publicURL + "/" + key, nil
}

func (s *OSSStore) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.publicURL+"/")
	if key == "" || key == url {
		return nil
	}
	return s.bucket.DeleteObject(key)
}
