package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMatch(t *testing.T) {
	cases := map[string]string{
		"":                      LocaleEN,
		"zh-CN,zh;q=0.9":        LocaleZH,
		"zh-Hans":               LocaleZH,
		"en-GB,en;q=0.8":        LocaleEN,
		"fr-FR":                 LocaleEN,
		"fr-FR;q=0.9, zh;q=0.8": LocaleZH,
	}
	for raw, expected := range cases {
		if got := Match(raw); got != expected {
			t.Fatalf("Match(%q) = %s, expected %s", raw, got, expected)
		}
	}
}

func TestResolveLocalePrefersQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?lang=zh-CN", nil)
	c.Request.Header.Set("Accept-Language", "en-US")
	if got := ResolveLocale(c); got != LocaleZH {
		t.Fatalf("expected query locale, got %s", got)
	}
}

func TestTFallback(t *testing.T) {
	if got := T(LocaleZH, "error.order_cart_empty"); got != "购物车为空" {
		t.Fatalf("unexpected zh message: %s", got)
	}
	if got := T("de-DE", "error.order_cart_empty"); got != "The cart is empty." {
		t.Fatalf("unexpected fallback message: %s", got)
	}
	if got := T(LocaleEN, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("expected key fallback, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.rate_limited", 30); got != "Too many attempts, please retry in 30 seconds." {
		t.Fatalf("unexpected sprintf: %s", got)
	}
}

func TestMessageTablesHaveSameKeys(t *testing.T) {
	for key := range messages[LocaleEN] {
		if _, ok := messages[LocaleZH][key]; !ok {
			t.Fatalf("zh-CN missing key %s", key)
		}
	}
	for key := range messages[LocaleZH] {
		if _, ok := messages[LocaleEN][key]; !ok {
			t.Fatalf("en-US missing key %s", key)
		}
	}
}
