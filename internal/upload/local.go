package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
)

// LocalStorage 本地磁盘存储，按 年/月 分目录
type LocalStorage struct {
	dir       string
	urlPrefix string
}

// NewLocalStorage 创建本地存储
func NewLocalStorage(dir, urlPrefix string) *LocalStorage {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "uploads"
	}
	urlPrefix = strings.TrimRight(strings.TrimSpace(urlPrefix), "/")
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	return &LocalStorage{dir: dir, urlPrefix: urlPrefix}
}

// Provider 提供方名称
func (s *LocalStorage) Provider() string {
	return constants.UploadProviderLocal
}

// Dir 存储根目录
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Put 写入文件
func (s *LocalStorage) Put(ctx context.Context, name string, src io.Reader) (*Object, error) {
	now := time.Now()
	key := path.Join("products", now.Format("2006"), now.Format("01"), path.Base(name))
	savePath := filepath.Join(s.dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return nil, err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(savePath)
		return nil, err
	}
	return &Object{
		URL: fmt.Sprintf("%s/%s", s.urlPrefix, key),
		Key: key,
	}, nil
}

// Remove 删除文件，文件不存在视为成功
func (s *LocalStorage) Remove(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	cleaned := path.Clean("/" + key)
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
