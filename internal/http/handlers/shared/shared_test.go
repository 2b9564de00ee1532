package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

type validationBody struct {
	StatusCode int `json:"status_code"`
	Data       struct {
		Errors map[string]string `json:"errors"`
	} `json:"data"`
}

func newTestContext(method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeValidation(t *testing.T, w *httptest.ResponseRecorder) validationBody {
	t.Helper()
	var resp validationBody
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp
}

func TestRespondBindErrorUsesJSONFieldNames(t *testing.T) {
	SetupValidator()
	type request struct {
		ProductID uint   `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
		Email     string `json:"email" binding:"omitempty,email"`
	}

	c, w := newTestContext(http.MethodPost, "/", `{"quantity":-1,"email":"nope"}`)
	var req request
	err := c.ShouldBindJSON(&req)
	if err == nil {
		t.Fatalf("expected bind error")
	}
	RespondBindError(c, err)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	resp := decodeValidation(t, w)
	if resp.Data.Errors["product_id"] != "This field is required." {
		t.Fatalf("product_id message mismatch: %q", resp.Data.Errors["product_id"])
	}
	if resp.Data.Errors["quantity"] != "Ensure this value is greater than or equal to 1." {
		t.Fatalf("quantity message mismatch: %q", resp.Data.Errors["quantity"])
	}
	if resp.Data.Errors["email"] == "" {
		t.Fatalf("email error missing: %+v", resp.Data.Errors)
	}
}

func TestRespondBindErrorTypeMismatch(t *testing.T) {
	SetupValidator()
	type request struct {
		Quantity int `json:"quantity"`
	}

	c, w := newTestContext(http.MethodPost, "/", `{"quantity":"many"}`)
	var req request
	RespondBindError(c, c.ShouldBindJSON(&req))

	resp := decodeValidation(t, w)
	if _, ok := resp.Data.Errors["quantity"]; !ok {
		t.Fatalf("type mismatch should be reported on quantity, got %+v", resp.Data.Errors)
	}
}

func TestRespondMappedError(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		field    string
	}{
		{name: "not found", err: service.ErrProductNotFound, wantCode: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", service.ErrOrderNotFound), wantCode: http.StatusNotFound},
		{name: "protected delete", err: service.ErrCollectionHasProducts, wantCode: http.StatusMethodNotAllowed},
		{name: "field error", err: service.ErrProductRefNotFound, wantCode: http.StatusBadRequest, field: "product_id"},
		{name: "cart empty", err: service.ErrCartEmpty, wantCode: http.StatusBadRequest, field: "cart_id"},
		{name: "quantity too large", err: service.ErrQuantityTooLarge, wantCode: http.StatusBadRequest, field: "quantity"},
		{name: "conflict", err: service.ErrTagExists, wantCode: http.StatusConflict},
		{name: "unknown", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/", "")
			RespondMappedError(c, tc.err, StoreErrorRules, response.CodeInternal, "error.internal")
			if w.Code != tc.wantCode {
				t.Fatalf("status want %d got %d body=%s", tc.wantCode, w.Code, w.Body.String())
			}
			if tc.field != "" {
				resp := decodeValidation(t, w)
				if resp.Data.Errors[tc.field] == "" {
					t.Fatalf("field %s missing in %+v", tc.field, resp.Data.Errors)
				}
			}
		})
	}
}

func TestRespondMappedErrorPaymentTransition(t *testing.T) {
	c, w := newTestContext(http.MethodPatch, "/", "")
	err := &service.PaymentTransitionError{From: "C", To: "P"}
	RespondMappedError(c, err, StoreErrorRules, response.CodeInternal, "error.internal")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	resp := decodeValidation(t, w)
	if resp.Data.Errors["payment_status"] != "Payment status cannot change from C to P." {
		t.Fatalf("payment_status message mismatch: %q", resp.Data.Errors["payment_status"])
	}
}

func TestRespondMappedErrorLocalized(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/?lang=zh", "")
	RespondMappedError(c, service.ErrCartNotFound, StoreErrorRules, response.CodeInternal, "error.internal")

	var resp struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.Msg == "" || resp.Msg == "Cart not found." {
		t.Fatalf("message should be localized, got %q", resp.Msg)
	}
}

func TestOptionalIDDistinguishesAbsentAndNull(t *testing.T) {
	var req struct {
		Featured OptionalID `json:"featured_product_id"`
	}
	cases := []struct {
		body    string
		set     bool
		cleared bool
		value   uint
	}{
		{body: `{}`},
		{body: `{"featured_product_id":null}`, set: true, cleared: true},
		{body: `{"featured_product_id":7}`, set: true, value: 7},
	}
	for _, tc := range cases {
		req.Featured = OptionalID{}
		if err := json.Unmarshal([]byte(tc.body), &req); err != nil {
			t.Fatalf("unmarshal %s failed: %v", tc.body, err)
		}
		if req.Featured.Set != tc.set || req.Featured.Cleared() != tc.cleared {
			t.Fatalf("%s: set=%v cleared=%v", tc.body, req.Featured.Set, req.Featured.Cleared())
		}
		if tc.value != 0 && (req.Featured.Value == nil || *req.Featured.Value != tc.value) {
			t.Fatalf("%s: value mismatch %v", tc.body, req.Featured.Value)
		}
	}
	if err := json.Unmarshal([]byte(`{"featured_product_id":"x"}`), &req); err == nil {
		t.Fatalf("non numeric id should be rejected")
	}
}

func TestParseIDParam(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: "0"}}
	if _, ok := ParseIDParam(c, "id", "error.product_not_found"); ok {
		t.Fatalf("zero id should be rejected")
	}
	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}

	c, _ = newTestContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := ParseIDParam(c, "id", "error.product_not_found")
	if !ok || id != 42 {
		t.Fatalf("id want 42 got %d ok=%v", id, ok)
	}
}

func TestParsePagination(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/?page=0&page_size=1000", "")
	page, size := ParsePagination(c, ProductListPageSize)
	if page != 1 || size != MaxPageSize {
		t.Fatalf("pagination want 1/%d got %d/%d", MaxPageSize, page, size)
	}

	c, _ = newTestContext(http.MethodGet, "/", "")
	page, size = ParsePagination(c, ProductListPageSize)
	if page != 1 || size != ProductListPageSize {
		t.Fatalf("default pagination want 1/%d got %d/%d", ProductListPageSize, page, size)
	}
}

func TestParseProductQuery(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/?collection_id=3&unit_price__gt=10&unit_price__lt=20.5&ordering=-unit_price&search=tea", "")
	query, ok := ParseProductQuery(c)
	if !ok {
		t.Fatalf("valid query rejected")
	}
	if query.CollectionID != 3 || query.Ordering != "-unit_price" || query.Search != "tea" {
		t.Fatalf("unexpected query: %+v", query)
	}
	if query.PriceGT == nil || query.PriceGT.String() != "10" {
		t.Fatalf("price gt mismatch: %v", query.PriceGT)
	}
	if query.PriceLT == nil || query.PriceLT.String() != "20.5" {
		t.Fatalf("price lt mismatch: %v", query.PriceLT)
	}

	c, w := newTestContext(http.MethodGet, "/?unit_price__gt=cheap", "")
	if _, ok := ParseProductQuery(c); ok {
		t.Fatalf("invalid price should be rejected")
	}
	resp := decodeValidation(t, w)
	if resp.Data.Errors["unit_price__gt"] == "" {
		t.Fatalf("unit_price__gt error missing: %+v", resp.Data.Errors)
	}
}
