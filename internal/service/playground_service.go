package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"

	"golang.org/x/sync/singleflight"
)

const (
	playgroundCacheKey     = "playground:hello"
	defaultPlaygroundURL   = "https://httpbin.org/delay/2"
	maxPlaygroundBodyBytes = 1 << 20
)

// PlaygroundService 慢接口演示：上游结果缓存到 Redis，并发未命中合并为一次请求
type PlaygroundService struct {
	upstreamURL string
	ttl         time.Duration
	httpClient  *http.Client
	group       singleflight.Group
}

// NewPlaygroundService 创建演示服务
func NewPlaygroundService(cfg config.PlaygroundConfig) *PlaygroundService {
	upstream := strings.TrimSpace(cfg.UpstreamURL)
	if upstream == "" {
		upstream = defaultPlaygroundURL
	}
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PlaygroundService{
		upstreamURL: upstream,
		ttl:         ttl,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Hello 返回上游 JSON
func (s *PlaygroundService) Hello(ctx context.Context) (json.RawMessage, error) {
	var cached json.RawMessage
	hit, err := cache.GetJSON(ctx, playgroundCacheKey, &cached)
	if err != nil {
		logger.Warnw("playground_cache_get_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	result, err, _ := s.group.Do(playgroundCacheKey, func() (interface{}, error) {
		body, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := cache.SetJSON(ctx, playgroundCacheKey, body, s.ttl); err != nil {
			logger.Warnw("playground_cache_set_failed", "error", err)
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(json.RawMessage), nil
}

func (s *PlaygroundService) fetch(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.upstreamURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlaygroundFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlaygroundFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: upstream status %d", ErrPlaygroundFailed, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPlaygroundBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlaygroundFailed, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: upstream returned non-JSON body", ErrPlaygroundFailed)
	}
	return json.RawMessage(body), nil
}
