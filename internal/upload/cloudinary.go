package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage Cloudinary 图片托管
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage 通过 cloudinary:// URL 创建存储
func NewCloudinaryStorage(cfg config.CloudinaryConfig) (*CloudinaryStorage, error) {
	rawURL := strings.TrimSpace(cfg.URL)
	if rawURL == "" {
		return nil, ErrProviderNotConfigured
	}
	cld, err := cloudinary.NewFromURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStorage{cld: cld, folder: strings.Trim(strings.TrimSpace(cfg.Folder), "/")}, nil
}

// Provider 提供方名称
func (s *CloudinaryStorage) Provider() string {
	return constants.UploadProviderCloudinary
}

// Put 上传图片
func (s *CloudinaryStorage) Put(ctx context.Context, name string, src io.Reader) (*Object, error) {
	publicID := strings.TrimSuffix(path.Base(name), path.Ext(name))
	result, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		PublicID: publicID,
		Folder:   s.folder,
	})
	if err != nil {
		return nil, err
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}
	return &Object{URL: result.SecureURL, Key: result.PublicID}, nil
}

// Remove 删除图片
func (s *CloudinaryStorage) Remove(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: key})
	if err != nil {
		return err
	}
	if result != nil && result.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", result.Error.Message)
	}
	return nil
}
