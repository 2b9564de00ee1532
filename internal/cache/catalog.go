package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	catalogVersionKey = "catalog:version"
	catalogCacheTTL   = 5 * time.Minute
)

// CatalogKey 生成带目录版本号的缓存 key，目录变更后旧 key 自然失效
func CatalogKey(ctx context.Context, name string) (string, error) {
	version, err := GetInt(ctx, catalogVersionKey)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("catalog:v%d:%s", version, name), nil
}

// GetCatalog 读取目录缓存
func GetCatalog(ctx context.Context, name string, dest interface{}) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	key, err := CatalogKey(ctx, name)
	if err != nil {
		return false, err
	}
	return GetJSON(ctx, key, dest)
}

// SetCatalog 写入目录缓存
func SetCatalog(ctx context.Context, name string, value interface{}) error {
	if !Enabled() {
		return nil
	}
	key, err := CatalogKey(ctx, name)
	if err != nil {
		return err
	}
	return SetJSON(ctx, key, value, catalogCacheTTL)
}

// BumpCatalogVersion 目录发生写操作后递增版本号
func BumpCatalogVersion(ctx context.Context) error {
	_, err := Incr(ctx, catalogVersionKey)
	return err
}
