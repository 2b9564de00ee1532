package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), models.GormConfig(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := config.Default()
	cfg.Store.CartExpireHours = 24
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	container := &provider.Container{
		Config:              cfg,
		CartRepo:            cartRepo,
		CartService:         service.NewCartService(cartRepo, productRepo),
		NotificationService: service.NewNotificationService(orderRepo, customerRepo, service.NewEmailService(&config.EmailConfig{})),
	}
	return NewConsumer(container), db
}

func TestCartPurgeInterval(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", time.Hour},
		{"abc", time.Hour},
		{"10s", time.Hour},
		{"30m", 30 * time.Minute},
		{" 2h ", 2 * time.Hour},
	}
	for _, tc := range cases {
		cfg := &config.Config{Store: config.StoreConfig{CartPurgeInterval: tc.raw}}
		if got := cartPurgeInterval(cfg); got != tc.want {
			t.Fatalf("interval %q want %s got %s", tc.raw, tc.want, got)
		}
	}
	if got := cartExpireAge(nil); got != 720*time.Hour {
		t.Fatalf("expected default expire age, got %s", got)
	}
}

func TestHandleCartPurgeRemovesStaleCarts(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	fresh := &models.Cart{}
	stale := &models.Cart{}
	if err := db.Create(fresh).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if err := db.Create(stale).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if err := db.Model(&models.Cart{}).Where("id = ?", stale.ID).Update("created_at", time.Now().Add(-48*time.Hour)).Error; err != nil {
		t.Fatalf("age cart failed: %v", err)
	}

	if err := consumer.handleCartPurge(context.Background(), queue.NewCartPurgeTask()); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	var count int64
	db.Model(&models.Cart{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 cart left, got %d", count)
	}
}

func TestHandlersSkipRetryOnBadPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	ctx := context.Background()

	handlers := map[string]func(context.Context, *asynq.Task) error{
		queue.TaskOrderPlaced:        consumer.handleOrderPlaced,
		queue.TaskOrderPaymentStatus: consumer.handleOrderPaymentStatus,
		queue.TaskCustomersNotify:    consumer.handleCustomersNotify,
	}
	for taskType, handle := range handlers {
		err := handle(ctx, asynq.NewTask(taskType, []byte("{broken")))
		if !errors.Is(err, asynq.SkipRetry) {
			t.Fatalf("%s: expected skip retry, got %v", taskType, err)
		}
	}
}

func TestHandleOrderPlacedWithEmailDisabled(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	ctx := context.Background()

	task, err := queue.NewOrderPlacedTask(queue.OrderPlacedPayload{OrderID: 0})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderPlaced(ctx, task); err != nil {
		t.Fatalf("zero order id should be skipped, got %v", err)
	}

	// 订单不存在时跳过
	task, _ = queue.NewOrderPlacedTask(queue.OrderPlacedPayload{OrderID: 77})
	if err := consumer.handleOrderPlaced(ctx, task); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}

	notify, _ := queue.NewCustomersNotifyTask(queue.CustomersNotifyPayload{Subject: "Hello", Message: "News"})
	if err := consumer.handleCustomersNotify(ctx, notify); err != nil {
		t.Fatalf("notify with no customers failed: %v", err)
	}
}
