package service

import (
	"errors"
	"testing"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
)

func TestCartQuantityUpperBound(t *testing.T) {
	env := setupServiceTest(t)
	collection := seedTestCollection(t, env.db, "Bulk")
	rice := seedTestProduct(t, env.db, collection.ID, "Rice", "2.00")

	cart, _ := env.carts.Create()
	if _, err := env.carts.AddItem(cart.ID, AddCartItemInput{ProductID: rice.ID, Quantity: constants.MaxItemQuantity + 1}); !errors.Is(err, ErrQuantityTooLarge) {
		t.Fatalf("expected quantity too large, got %v", err)
	}
	item, err := env.carts.AddItem(cart.ID, AddCartItemInput{ProductID: rice.ID, Quantity: constants.MaxItemQuantity})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := env.carts.AddItem(cart.ID, AddCartItemInput{ProductID: rice.ID, Quantity: 1}); !errors.Is(err, ErrQuantityTooLarge) {
		t.Fatalf("expected merged quantity to be capped, got %v", err)
	}
	if _, err := env.carts.UpdateItemQuantity(cart.ID, item.ID, constants.MaxItemQuantity+1); !errors.Is(err, ErrQuantityTooLarge) {
		t.Fatalf("expected quantity too large on update, got %v", err)
	}

	view, err := env.carts.GetItem(cart.ID, item.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if view.Quantity != constants.MaxItemQuantity {
		t.Fatalf("expected quantity %d, got %d", constants.MaxItemQuantity, view.Quantity)
	}
}

func TestNormalizeCartID(t *testing.T) {
	if _, ok := NormalizeCartID("abc"); ok {
		t.Fatalf("expected malformed id rejected")
	}
	id, ok := NormalizeCartID(" 7D3F1D0E-2B7A-4A7E-9A0C-2F1F1C7F0B11 ")
	if !ok {
		t.Fatalf("expected valid id accepted")
	}
	if id != "7d3f1d0e-2b7a-4a7e-9a0c-2f1f1c7f0b11" {
		t.Fatalf("expected canonical lower-case id, got %s", id)
	}
}

func TestCartAddItemMergesQuantity(t *testing.T) {
	env := setupServiceTest(t)
	collection := seedTestCollection(t, env.db, "Fruit")
	apple := seedTestProduct(t, env.db, collection.ID, "Apple", "1.25")

	cart, err := env.carts.Create()
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if len(cart.Items) != 0 || !cart.TotalPrice.IsZero() {
		t.Fatalf("expected empty cart")
	}

	first, err := env.carts.AddItem(cart.ID, AddCartItemInput{ProductID: apple.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	second, err := env.carts.AddItem(cart.ID, AddCartItemInput{ProductID: apple.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("add item again failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same cart item to be reused")
	}
	if second.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", second.Quantity)
	}
	if second.TotalPrice.String() != "6.25" {
		t.Fatalf("unexpected item total: %s", second.TotalPrice.String())
	}

	view, err := env.carts.Get(cart.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 1 || view.TotalPrice.String() != "6.25" {
		t.Fatalf("unexpected cart view: items=%d total=%s", len(view.Items), view.TotalPrice.String())
	}
}

func TestCartItemErrors(t *testing.T) {
	env := setupServiceTest(t)
	collection := seedTestCollection(t, env.db, "Dairy")
	milk := seedTestProduct(t, env.db, collection.ID, "Milk", "0.99")

	cart, _ := env.carts.Create()
	if _, err := env.carts.AddItem(cart.ID, AddCartItemInput{ProductID: milk.ID, Quantity: 0}); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected quantity invalid, got %v", err)
	}
	if _, err := env.carts.AddItem(cart.ID, AddCartItemInput{ProductID: milk.ID + 100, Quantity: 1}); !errors.Is(err, ErrProductRefNotFound) {
		t.Fatalf("expected product ref not found, got %v", err)
	}
	if _, err := env.carts.AddItem("bad-id", AddCartItemInput{ProductID: milk.ID, Quantity: 1}); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected cart not found, got %v", err)
	}

	item, err := env.carts.AddItem(cart.ID, AddCartItemInput{ProductID: milk.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := env.carts.UpdateItemQuantity(cart.ID, item.ID, 0); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected quantity invalid on update, got %v", err)
	}
	updated, err := env.carts.UpdateItemQuantity(cart.ID, item.ID, 4)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if updated.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", updated.Quantity)
	}

	other, _ := env.carts.Create()
	if _, err := env.carts.GetItem(other.ID, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected item scoped to its cart, got %v", err)
	}
	if err := env.carts.DeleteItem(cart.ID, item.ID); err != nil {
		t.Fatalf("delete item failed: %v", err)
	}
	if err := env.carts.DeleteItem(cart.ID, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected item not found, got %v", err)
	}
}

func TestCartDeleteAndPurge(t *testing.T) {
	env := setupServiceTest(t)
	collection := seedTestCollection(t, env.db, "Frozen")
	peas := seedTestProduct(t, env.db, collection.ID, "Peas", "2.10")

	fresh, _ := env.carts.Create()
	stale, _ := env.carts.Create()
	if _, err := env.carts.AddItem(stale.ID, AddCartItemInput{ProductID: peas.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	old := time.Now().Add(-72 * time.Hour)
	if err := env.db.Model(&models.Cart{}).Where("id = ?", stale.ID).Update("created_at", old).Error; err != nil {
		t.Fatalf("age cart failed: %v", err)
	}

	removed, err := env.carts.PurgeStale(48 * time.Hour)
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 stale cart removed, got %d", removed)
	}
	var items int64
	env.db.Model(&models.CartItem{}).Where("cart_id = ?", stale.ID).Count(&items)
	if items != 0 {
		t.Fatalf("expected stale cart items removed, got %d", items)
	}
	if _, err := env.carts.Get(fresh.ID); err != nil {
		t.Fatalf("fresh cart should survive purge: %v", err)
	}

	if err := env.carts.Delete(fresh.ID); err != nil {
		t.Fatalf("delete cart failed: %v", err)
	}
	if err := env.carts.Delete(fresh.ID); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected cart not found, got %v", err)
	}
}
