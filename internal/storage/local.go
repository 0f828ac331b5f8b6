package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) UploadImage(ctx context.Context, ext, contentType string, file io.Reader, size int64) (string, error) {
	name := newObjectName(ext)
	fullPath := filepath.Join(s.dir, name)

	out, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("ошибка создания файла: %w", err)
	}

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("ошибка записи файла: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("ошибка записи файла: %w", err)
	}

	return publicPath(name), nil
}

func (s *LocalStorage) DeleteImage(ctx context.Context, filePath string) error {
	name, err := objectName(filePath)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("ошибка удаления файла: %w", err)
	}

	return nil
}

func (s *LocalStorage) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// no directory listings
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
