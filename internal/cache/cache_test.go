package cache

import (
	"context"
	"testing"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	ctx := context.Background()
	if Enabled() || Client() != nil {
		t.Fatalf("expected cache disabled")
	}
	if err := SetJSON(ctx, "k", map[string]int{"a": 1}, 0); err != nil {
		t.Fatalf("set on disabled cache failed: %v", err)
	}
	var dest map[string]int
	hit, err := GetJSON(ctx, "k", &dest)
	if err != nil || hit {
		t.Fatalf("expected miss on disabled cache, hit=%v err=%v", hit, err)
	}
	if err := BumpCatalogVersion(ctx); err != nil {
		t.Fatalf("bump on disabled cache failed: %v", err)
	}
	if hit, err := GetCatalog(ctx, "collections", &dest); err != nil || hit {
		t.Fatalf("expected catalog miss, hit=%v err=%v", hit, err)
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	redisPrefix = "shop"
	t.Cleanup(func() { redisPrefix = "" })
	if got := Key("auth:user:1"); got != "shop:auth:user:1" {
		t.Fatalf("unexpected key: %s", got)
	}
	redisPrefix = ""
	if got := Key(" "); got != "sf" {
		t.Fatalf("unexpected empty key: %s", got)
	}
}

func TestBuildAuthStates(t *testing.T) {
	if BuildUserAuthState(nil) != nil || BuildAdminAuthState(nil) != nil {
		t.Fatalf("expected nil states for nil models")
	}
	user := BuildUserAuthState(&models.User{ID: 3, Status: "active", TokenVersion: 2})
	if user.UserID != 3 || user.TokenVersion != 2 {
		t.Fatalf("unexpected user state: %+v", user)
	}
	admin := BuildAdminAuthState(&models.Admin{ID: 1, Username: "admin", IsSuper: true})
	if !admin.IsSuper || admin.Username != "admin" {
		t.Fatalf("unexpected admin state: %+v", admin)
	}
}
