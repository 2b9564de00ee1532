package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/storefront-next/internal/config"
)

func TestLocalStoragePutAndRemove(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(dir, "/media/")

	obj, err := storage.Put(context.Background(), "../../escape.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if !strings.HasPrefix(obj.URL, "/media/products/") || !strings.HasSuffix(obj.URL, "/escape.png") {
		t.Fatalf("unexpected url: %s", obj.URL)
	}
	full := filepath.Join(dir, filepath.FromSlash(obj.Key))
	data, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("read stored file failed: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected content: %s", string(data))
	}

	if err := storage.Remove(context.Background(), obj.Key); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := os.Stat(full); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err: %v", err)
	}
	if err := storage.Remove(context.Background(), obj.Key); err != nil {
		t.Fatalf("second remove should be noop: %v", err)
	}
}

func TestNewStorageByProvider(t *testing.T) {
	storage, err := New(&config.UploadConfig{Provider: "local", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("new local storage failed: %v", err)
	}
	if storage.Provider() != "local" {
		t.Fatalf("unexpected provider: %s", storage.Provider())
	}
	if _, err := New(&config.UploadConfig{Provider: "cloudinary"}); err != ErrProviderNotConfigured {
		t.Fatalf("expected not configured error, got %v", err)
	}
	if _, err := New(&config.UploadConfig{Provider: "ftp"}); err != ErrProviderInvalid {
		t.Fatalf("expected invalid provider error, got %v", err)
	}
}
