package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/i18n"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

func TestCaptchaVerify(t *testing.T) {
	disabled := NewCaptchaService(config.CaptchaConfig{})
	if err := disabled.Verify(CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled captcha should pass, got %v", err)
	}

	svc := NewCaptchaService(config.CaptchaConfig{AdminLogin: true})
	if err := svc.Verify(CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected captcha required, got %v", err)
	}
	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || !strings.HasPrefix(challenge.ImageBase64, "data:image/") {
		t.Fatalf("unexpected challenge: %+v", challenge)
	}

	if err := svc.imageStore().Set("fixed-id", "abcd"); err != nil {
		t.Fatalf("seed captcha failed: %v", err)
	}
	if err := svc.Verify(CaptchaVerifyPayload{CaptchaID: "fixed-id", CaptchaCode: "zzzz"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected captcha invalid, got %v", err)
	}
	// 校验后即失效
	if err := svc.Verify(CaptchaVerifyPayload{CaptchaID: "fixed-id", CaptchaCode: "ABCD"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected used captcha invalid, got %v", err)
	}
	if err := svc.imageStore().Set("fresh-id", "abcd"); err != nil {
		t.Fatalf("seed captcha failed: %v", err)
	}
	if err := svc.Verify(CaptchaVerifyPayload{CaptchaID: "fresh-id", CaptchaCode: " ABCD "}); err != nil {
		t.Fatalf("expected captcha accepted, got %v", err)
	}
}

func TestPlaygroundHelloCoalescesRequests(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"/delay/2"}`))
	}))
	defer upstream.Close()

	svc := NewPlaygroundService(config.PlaygroundConfig{UpstreamURL: upstream.URL, TimeoutSeconds: 5})

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, err := svc.Hello(context.Background())
			if err == nil && !strings.Contains(string(body), "/delay/2") {
				err = errors.New("unexpected body: " + string(body))
			}
			errs <- err
		}()
	}
	// 等待首个请求到达上游后再放行
	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&hits) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("hello failed: %v", err)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("expected concurrent misses to share one upstream call, got %d", got)
	}
}

func TestPlaygroundHelloUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	svc := NewPlaygroundService(config.PlaygroundConfig{UpstreamURL: upstream.URL})
	if _, err := svc.Hello(context.Background()); !errors.Is(err, ErrPlaygroundFailed) {
		t.Fatalf("expected playground failure, got %v", err)
	}
}

func TestOrderPlacedEmailContent(t *testing.T) {
	subject, body := buildOrderPlacedContent(OrderPlacedEmailInput{
		Name:      "Ada",
		OrderID:   42,
		ItemCount: 3,
		Total:     models.MustMoney("19.5"),
	}, "en")
	if subject != "Order #42 received" {
		t.Fatalf("unexpected subject: %s", subject)
	}
	if !strings.Contains(body, "Hi Ada") || !strings.Contains(body, "3 item(s)") || !strings.Contains(body, "19.50") {
		t.Fatalf("unexpected body: %s", body)
	}

	_, zhBody := buildOrderPlacedContent(OrderPlacedEmailInput{OrderID: 7}, i18n.LocaleZH)
	if !strings.HasPrefix(zhBody, "顾客 您好") {
		t.Fatalf("expected default greeting, got %s", zhBody)
	}
}

func TestPaymentStatusEmailContent(t *testing.T) {
	subject, body := buildPaymentStatusContent(PaymentStatusEmailInput{Name: "Ada", OrderID: 9, Status: "c"}, "en-US")
	if subject != "Order #9 payment complete" {
		t.Fatalf("unexpected subject: %s", subject)
	}
	if !strings.Contains(body, "now: Complete") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestEmailServiceDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{})
	if svc.Enabled() {
		t.Fatalf("expected email disabled")
	}
	if err := svc.SendCustomEmail("a@example.com", "hi", "body"); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected email disabled error, got %v", err)
	}
	misconfigured := NewEmailService(&config.EmailConfig{Enabled: true})
	if err := misconfigured.SendCustomEmail("a@example.com", "hi", "body"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected not configured error, got %v", err)
	}
}

func TestNotificationSkipsWhenEmailDisabled(t *testing.T) {
	env := setupServiceTest(t)
	collection := seedTestCollection(t, env.db, "Music")
	record := seedTestProduct(t, env.db, collection.ID, "Vinyl", "25.00")
	user := seedTestUser(t, env.db, "listener@example.com")

	cart, _ := env.carts.Create()
	if _, err := env.carts.AddItem(cart.ID, AddCartItemInput{ProductID: record.ID, Quantity: 2}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	order, err := env.orders.CreateFromCart(user.ID, cart.ID)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	notifier := NewNotificationService(
		repository.NewOrderRepository(env.db),
		repository.NewCustomerRepository(env.db),
		NewEmailService(&config.EmailConfig{}),
	)
	if err := notifier.OrderPlaced(order.ID); err != nil {
		t.Fatalf("order placed notification failed: %v", err)
	}
	if err := notifier.PaymentStatusChanged(order.ID, "C"); err != nil {
		t.Fatalf("payment notification failed: %v", err)
	}
	if err := notifier.OrderPlaced(order.ID + 100); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
	sent, err := notifier.NotifyCustomers("Sale", "Everything 10% off")
	if err != nil {
		t.Fatalf("notify customers failed: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 recipient processed, got %d", sent)
	}
}
