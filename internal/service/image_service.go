package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"graphblog/internal/config"
	"graphblog/internal/logger"
	"graphblog/internal/storage"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedImage means the upload is not a png or jpeg file.
var ErrUnsupportedImage = errors.New("неподдерживаемый тип файла")

// detected content type -> stored file extension
var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

type ImageService interface {
	UploadImage(ctx context.Context, file io.ReadSeeker, size int64) (string, error)
	// DeleteImage removes a previously uploaded file. Failures are only logged.
	DeleteImage(ctx context.Context, filePath string)
}

type imageService struct {
	storage storage.Storage
	cfg     *config.Config
	log     *logger.Logger
}

func NewImageService(storage storage.Storage, cfg *config.Config, log *logger.Logger) ImageService {
	return &imageService{
		storage: storage,
		cfg:     cfg,
		log:     log,
	}
}

func (s *imageService) UploadImage(ctx context.Context, file io.ReadSeeker, size int64) (string, error) {
	if s.cfg.MaxUploadSize > 0 && size > s.cfg.MaxUploadSize {
		return "", NewFileTooLargeError(s.cfg.MaxUploadSize)
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", NewInternalError(fmt.Errorf("ошибка определения типа файла: %w", err))
	}

	ext, ok := allowedImageTypes[mtype.String()]
	if !ok {
		s.log.Debugw("Файл отклонён", "type", mtype.String(), "size", humanize.Bytes(uint64(size)))
		return "", ErrUnsupportedImage
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", NewInternalError(fmt.Errorf("ошибка чтения файла: %w", err))
	}

	filePath, err := s.storage.UploadImage(ctx, ext, mtype.String(), file, size)
	if err != nil {
		return "", NewInternalError(err)
	}

	s.log.Infow("Изображение загружено", "path", filePath, "type", mtype.String(), "size", humanize.Bytes(uint64(size)))

	return filePath, nil
}

func (s *imageService) DeleteImage(ctx context.Context, filePath string) {
	if err := s.storage.DeleteImage(ctx, filePath); err != nil {
		s.log.Warnw("Не удалось удалить старое изображение", "path", filePath, "error", err)
	}
}

func NewFileTooLargeError(limit int64) *Error {
	return NewValidationError(FieldError{
		Field:   "image",
		Message: fmt.Sprintf("File is too large (max %s).", humanize.IBytes(uint64(limit))),
	})
}
