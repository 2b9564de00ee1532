package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/upload"

	"github.com/google/uuid"
)

var defaultImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

var defaultImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// UploadService 图片上传服务
type UploadService struct {
	cfg     *config.UploadConfig
	storage upload.Storage
}

// NewUploadService 创建图片上传服务
func NewUploadService(cfg *config.UploadConfig, storage upload.Storage) *UploadService {
	return &UploadService{cfg: cfg, storage: storage}
}

// SaveImage 校验并保存图片
func (s *UploadService) SaveImage(ctx context.Context, file *multipart.FileHeader) (*upload.Object, error) {
	if file == nil {
		return nil, ErrUploadMissing
	}
	if s.storage == nil {
		return nil, ErrUploadFailed
	}
	if s.cfg != nil && s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return nil, ErrUploadTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" || !isAllowedExtension(ext, s.allowedExtensions()) {
		return nil, ErrUploadTypeInvalid
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 读取文件头部识别 MIME 类型
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if !isAllowedContentType(http.DetectContentType(buffer[:n]), s.allowedTypes()) {
		return nil, ErrUploadTypeInvalid
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	obj, err := s.storage.Put(ctx, name, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return obj, nil
}

// Remove 删除已保存的图片
func (s *UploadService) Remove(ctx context.Context, key string) error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Remove(ctx, key)
}

func (s *UploadService) allowedExtensions() []string {
	if s.cfg != nil && len(s.cfg.AllowedExtensions) > 0 {
		return s.cfg.AllowedExtensions
	}
	return defaultImageExtensions
}

func (s *UploadService) allowedTypes() []string {
	if s.cfg != nil && len(s.cfg.AllowedTypes) > 0 {
		return s.cfg.AllowedTypes
	}
	return defaultImageTypes
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

func isAllowedContentType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(contentType, strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}
