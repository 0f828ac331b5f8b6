package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"graphblog/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOClient struct {
	client *minio.Client
	bucket string
}

func NewMinIOClient(ctx context.Context, cfg *config.Config) (*MinIOClient, error) {
	mc := cfg.Storage.MinIO

	client, err := minio.New(mc.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, ""),
		Secure: mc.UseSSL,
		Region: mc.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, mc.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки бакета %s: %w", mc.BucketName, err)
	}

	if !exists {
		err = client.MakeBucket(ctx, mc.BucketName, minio.MakeBucketOptions{Region: mc.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания бакета %s: %w", mc.BucketName, err)
		}
	}

	return &MinIOClient{client: client, bucket: mc.BucketName}, nil
}

func (m *MinIOClient) UploadImage(ctx context.Context, ext, contentType string, file io.Reader, size int64) (string, error) {
	name := newObjectName(ext)

	_, err := m.client.PutObject(ctx, m.bucket, name, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	return publicPath(name), nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, filePath string) error {
	name, err := objectName(filePath)
	if err != nil {
		return err
	}

	err = m.client.RemoveObject(ctx, m.bucket, name,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}

	return nil
}

// Handler streams objects from the bucket.
func (m *MinIOClient) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if name == "" || strings.Contains(name, "/") {
			http.NotFound(w, r)
			return
		}

		obj, err := m.client.GetObject(r.Context(), m.bucket, name, minio.GetObjectOptions{})
		if err != nil {
			http.Error(w, "Ошибка чтения изображения", http.StatusInternalServerError)
			return
		}
		defer obj.Close()

		info, err := obj.Stat()
		if err != nil {
			if minio.ToErrorResponse(err).Code == "NoSuchKey" {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Ошибка чтения изображения", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", info.ContentType)
		http.ServeContent(w, r, name, info.LastModified, obj)
	})
}
