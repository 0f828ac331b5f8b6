package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the first segment of every stored file path and the URL
// prefix the images are served under.
const PublicPrefix = "images"

var ErrInvalidPath = errors.New("некорректный путь к файлу")

type Storage interface {
	// UploadImage stores the file under a generated name and returns its
	// public path, e.g. "images/<uuid>.png".
	UploadImage(ctx context.Context, ext, contentType string, file io.Reader, size int64) (string, error)
	DeleteImage(ctx context.Context, filePath string) error
	// Handler serves stored files; it is mounted with the "/images/" prefix stripped.
	Handler() http.Handler
}

func newObjectName(ext string) string {
	return uuid.New().String() + ext
}

// objectName extracts the stored file name from a public path. Only paths of
// the form "images/<name>" (optionally with a leading slash) are accepted.
func objectName(filePath string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimSpace(filePath))
	dir, name := path.Split(cleaned)

	if dir != "/"+PublicPrefix+"/" || name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, filePath)
	}

	return name, nil
}

func publicPath(name string) string {
	return PublicPrefix + "/" + name
}
