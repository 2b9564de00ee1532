package upload

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
)

var (
	// ErrProviderInvalid 未知的存储提供方
	ErrProviderInvalid = errors.New("upload provider invalid")
	// ErrProviderNotConfigured 存储提供方缺少必要配置
	ErrProviderNotConfigured = errors.New("upload provider not configured")
)

// Object 已保存对象
type Object struct {
	URL string // 对外访问地址
	Key string // 存储侧标识，删除时使用
}

// Storage 图片存储
type Storage interface {
	Put(ctx context.Context, name string, src io.Reader) (*Object, error)
	Remove(ctx context.Context, key string) error
	Provider() string
}

// New 按配置创建存储实现
func New(cfg *config.UploadConfig) (Storage, error) {
	if cfg == nil {
		return nil, ErrProviderNotConfigured
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch provider {
	case "", constants.UploadProviderLocal:
		return NewLocalStorage(cfg.Dir, cfg.URLPrefix), nil
	case constants.UploadProviderCloudinary:
		storage, err := NewCloudinaryStorage(cfg.Cloudinary)
		if err != nil {
			return nil, err
		}
		return storage, nil
	default:
		return nil, ErrProviderInvalid
	}
}
