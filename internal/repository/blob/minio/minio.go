package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"creative-editor/internal/config"
	"creative-editor/internal/repository/blob"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/zlog"
)

const (
	metaFilename    = "Filename"
	defaultMimeType = "application/octet-stream"
)

// FileRepository keeps staged logo blobs and rendered previews in one bucket.
type FileRepository struct {
	client *minio.Client
	bucket string
	logger *zlog.Zerolog
}

func NewMinIORepository(ctx context.Context, cfg *config.Config, logger *zlog.Zerolog) (*FileRepository, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Minio.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Minio.Bucket, err)
		}
		logger.Info().Str("bucket", cfg.Minio.Bucket).Msg("Bucket created")
	}

	return &FileRepository{
		client: client,
		bucket: cfg.Minio.Bucket,
		logger: logger,
	}, nil
}

// Stage stores an uploaded file and returns its blob URL.
func (r *FileRepository) Stage(ctx context.Context, filename string, data io.Reader, size int64) (string, error) {
	if size == 0 {
		return "", blob.ErrEmptyBlob
	}

	key := blob.NewKey(filename)
	_, err := r.client.PutObject(ctx, r.bucket, key, data, size, minio.PutObjectOptions{
		ContentType:  contentType(filename),
		UserMetadata: map[string]string{metaFilename: filepath.Base(filename)},
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to stage %s: %v", blob.ErrStorageError, filename, err)
	}

	r.logger.Debug().Str("key", key).Int64("size", size).Msg("Blob staged")
	return blob.URL(key), nil
}

// Open returns the staged blob's content. The caller closes the reader.
func (r *FileRepository) Open(ctx context.Context, url string) (io.ReadCloser, blob.Meta, error) {
	key, err := blob.KeyFromURL(url)
	if err != nil {
		return nil, blob.Meta{}, err
	}

	info, err := r.client.StatObject(ctx, r.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, blob.Meta{}, r.mapError(err, blob.ErrBlobNotFound, key)
	}

	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, blob.Meta{}, r.mapError(err, blob.ErrBlobNotFound, key)
	}

	filename := info.UserMetadata[metaFilename]
	if filename == "" {
		filename = filepath.Base(key)
	}
	return obj, blob.Meta{Filename: filename, ContentType: info.ContentType, Size: info.Size}, nil
}

// Revoke deletes a staged blob. Revoking a missing blob is not an error.
func (r *FileRepository) Revoke(ctx context.Context, url string) error {
	key, err := blob.KeyFromURL(url)
	if err != nil {
		return err
	}
	if err := r.client.RemoveObject(ctx, r.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: failed to revoke %s: %v", blob.ErrStorageError, key, err)
	}
	r.logger.Debug().Str("key", key).Msg("Blob revoked")
	return nil
}

func (r *FileRepository) SaveObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, r.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to save %s: %v", blob.ErrStorageError, key, err)
	}
	return nil
}

func (r *FileRepository) GetObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, r.mapError(err, blob.ErrObjectNotFound, key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, r.mapError(err, blob.ErrObjectNotFound, key)
	}
	return data, nil
}

func (r *FileRepository) mapError(err error, notFound error, key string) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", notFound, key)
	}
	return fmt.Errorf("%w: %s: %v", blob.ErrStorageError, key, err)
}

func contentType(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return defaultMimeType
}
