package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务：消费任务并定时投递购物车清理
type Service struct {
	name      string
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	consumer  *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	serverCfg.Logger = newAsynqLogger()
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{Logger: newAsynqLogger()})
	cronspec := fmt.Sprintf("@every %s", cartPurgeInterval(consumer.Config))
	if _, err := scheduler.Register(cronspec, queue.NewCartPurgeTask(), asynq.Queue(queue.DefaultQueue)); err != nil {
		return nil, fmt.Errorf("register cart purge schedule: %w", err)
	}

	return &Service{
		name:      "worker",
		server:    server,
		scheduler: scheduler,
		mux:       mux,
		consumer:  consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务，阻塞直到服务停止
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.scheduler != nil {
		if err := s.scheduler.Start(); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}
	// 启动时先清理一次
	if err := s.consumer.handleCartPurge(ctx, queue.NewCartPurgeTask()); err != nil {
		logger.Warnw("worker_initial_cart_purge_failed", "error", err)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	_ = ctx
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	if s.server != nil {
		s.server.Shutdown()
	}
	return nil
}

// asynqLogger 将 asynq 日志接入 zap
type asynqLogger struct{}

func newAsynqLogger() asynq.Logger {
	return asynqLogger{}
}

func (asynqLogger) Debug(args ...interface{}) { logger.S().Debug(args...) }
func (asynqLogger) Info(args ...interface{})  { logger.S().Info(args...) }
func (asynqLogger) Warn(args ...interface{})  { logger.S().Warn(args...) }
func (asynqLogger) Error(args ...interface{}) { logger.S().Error(args...) }
func (asynqLogger) Fatal(args ...interface{}) { logger.S().Fatal(args...) }
