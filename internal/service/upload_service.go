package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ethiqia/internal/logging"
	"ethiqia/internal/repository"
	"ethiqia/internal/storage"
)

// Upload kinds map to object name prefixes.
const (
	KindPost   = "posts"
	KindAvatar = "avatars"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type UploadRequest struct {
	UserID      string
	Filename    string
	ContentType string
	File        io.Reader
}

type UploadService interface {
	UploadImage(ctx context.Context, kind string, req UploadRequest) (string, error)
	UploadProfileAvatar(ctx context.Context, req UploadRequest) (string, error)
}

type uploadService struct {
	storage  storage.Storage
	userRepo repository.UserRepository
	maxSize  int64
	now      func() time.Time
	logger   *zap.Logger
}

func NewUploadService(storage storage.Storage, userRepo repository.UserRepository, maxSize int64) UploadService {
	return &uploadService{
		storage:  storage,
		userRepo: userRepo,
		maxSize:  maxSize,
		now:      time.Now,
		logger:   logging.WithComponent("upload-service"),
	}
}

func (s *uploadService) UploadImage(ctx context.Context, kind string, req UploadRequest) (string, error) {
	_, url, err := s.store(ctx, kind, req)
	return url, err
}

// store writes the image and returns both its object name and public URL.
func (s *uploadService) store(ctx context.Context, kind string, req UploadRequest) (string, string, error) {
	data, err := io.ReadAll(io.LimitReader(req.File, s.maxSize+1))
	if err != nil {
		return "", "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return "", "", fmt.Errorf("%w: limit is %s", ErrFileTooLarge, humanize.IBytes(uint64(s.maxSize)))
	}

	contentType, ext, err := imageType(req.ContentType, data)
	if err != nil {
		return "", "", err
	}

	now := s.now().UTC()
	objectName := path.Join(kind, req.UserID, now.Format("2006"), now.Format("01"), uuid.New().String()+ext)

	meta := map[string]string{
		"user-id":       req.UserID,
		"original-name": path.Base(req.Filename),
	}

	url, err := s.storage.Upload(ctx, objectName, contentType, bytes.NewReader(data), int64(len(data)), meta)
	if err != nil {
		return "", "", err
	}
	return objectName, url, nil
}

// UploadProfileAvatar removes the stored object again when the profile row
// cannot be updated.
func (s *uploadService) UploadProfileAvatar(ctx context.Context, req UploadRequest) (string, error) {
	objectName, url, err := s.store(ctx, KindAvatar, req)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateAvatar(ctx, req.UserID, url); err != nil {
		if delErr := s.storage.Delete(ctx, objectName); delErr != nil {
			s.logger.Warn("orphaned avatar object",
				zap.String("object", objectName),
				zap.String("user_id", req.UserID),
				zap.Error(delErr),
			)
		}
		return "", err
	}

	return url, nil
}

// imageType checks both the declared and the sniffed type. The sniffed type
// decides the stored content type.
func imageType(declared string, data []byte) (string, string, error) {
	declared = strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
	if _, ok := allowedImageTypes[declared]; declared != "" && !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidFile, declared)
	}

	detected := mimetype.Detect(data).String()
	ext, ok := allowedImageTypes[detected]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidFile, detected)
	}

	return detected, ext, nil
}
