// Package media keeps uploaded video files and thumbnails in an S3
// compatible bucket.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Cmnplays/BACKEND-MEGA-PROJECT/internal/catalog"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base objects are served from. Defaults to
	// <scheme>://<endpoint>/<bucket>.
	PublicURL string
}

// objectAPI is the part of *minio.Client the store uses.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Store struct {
	client  objectAPI
	bucket  string
	baseURL string
}

// New connects to the object store and creates the bucket if needed.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("media: endpoint and bucket are required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("media: create client: %w", err)
	}
	return newStore(ctx, client, cfg)
}

func newStore(ctx context.Context, client objectAPI, cfg Config) (*Store, error) {
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("media: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("media: create bucket: %w", err)
		}
	}

	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.Endpoint + "/" + cfg.Bucket
	}
	return &Store{client: client, bucket: cfg.Bucket, baseURL: base}, nil
}

// Upload stores f under folder with a fresh object name and returns its
// public URL.
func (s *Store) Upload(ctx context.Context, folder string, f catalog.MediaFile) (string, error) {
	key := objectKey(folder, f.Name)
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	size := f.Size
	if size <= 0 {
		size = -1
	}
	if _, err := s.client.PutObject(ctx, s.bucket, key, f.Body, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("media: put %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the object behind url. URLs that do not belong to this
// store are ignored.
func (s *Store) Delete(ctx context.Context, url string) error {
	key, ok := s.KeyFromURL(url)
	if !ok {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("media: remove %s: %w", key, err)
	}
	return nil
}

// KeyFromURL extracts the object key from a URL returned by Upload.
func (s *Store) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func objectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\?#% `) {
		ext = ""
	}
	return folder + "/" + uuid.NewString() + ext
}
