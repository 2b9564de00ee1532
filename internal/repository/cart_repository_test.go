package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
)

func TestCartAddQuantityRespectsLimit(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)
	collection := seedCollection(t, db, "Beverages")
	product := seedProduct(t, db, collection.ID, "Water", "1.00", 5)

	cart := &models.Cart{}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if _, err := repo.AddQuantity(cart.ID, product.ID, constants.MaxItemQuantity+1); !errors.Is(err, ErrQuantityLimitExceeded) {
		t.Fatalf("expected limit exceeded on oversized add, got %v", err)
	}
	if _, err := repo.AddQuantity(cart.ID, product.ID, constants.MaxItemQuantity); err != nil {
		t.Fatalf("add up to the limit failed: %v", err)
	}
	if _, err := repo.AddQuantity(cart.ID, product.ID, 1); !errors.Is(err, ErrQuantityLimitExceeded) {
		t.Fatalf("expected limit exceeded on overflow, got %v", err)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != constants.MaxItemQuantity {
		t.Fatalf("expected quantity to stay at the limit, got %+v", items)
	}
}

func TestCartAddQuantityMergesSameProduct(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)
	collection := seedCollection(t, db, "Beverages")
	product := seedProduct(t, db, collection.ID, "Coffee", "10.00", 5)

	cart := &models.Cart{}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if _, err := repo.AddQuantity(cart.ID, product.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	item, err := repo.AddQuantity(cart.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", item.Quantity)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("expected a single row with quantity 5, got %+v", items)
	}
	if items[0].Product == nil || items[0].Product.ID != product.ID {
		t.Fatalf("expected product preloaded, got %+v", items[0].Product)
	}
}

func TestCartDeleteRemovesItems(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)
	collection := seedCollection(t, db, "Beverages")
	product := seedProduct(t, db, collection.ID, "Tea", "4.50", 5)

	cart := &models.Cart{}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if _, err := repo.AddQuantity(cart.ID, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	deleted, err := repo.Delete(cart.ID)
	if err != nil || !deleted {
		t.Fatalf("expected cart deleted, got deleted=%v err=%v", deleted, err)
	}
	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected cart items removed, got %d", count)
	}

	deleted, err = repo.Delete(cart.ID)
	if err != nil || deleted {
		t.Fatalf("expected second delete to report missing cart, got deleted=%v err=%v", deleted, err)
	}
}

func TestCartDeleteStale(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)

	old := &models.Cart{CreatedAt: time.Now().Add(-48 * time.Hour)}
	fresh := &models.Cart{}
	if err := repo.Create(old); err != nil {
		t.Fatalf("create old cart failed: %v", err)
	}
	if err := repo.Create(fresh); err != nil {
		t.Fatalf("create fresh cart failed: %v", err)
	}
	if err := db.Create(&models.CartItem{CartID: old.ID, ProductID: 1, Quantity: 1}).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	removed, err := repo.DeleteStale(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("delete stale failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 stale cart removed, got %d", removed)
	}
	if cart, _ := repo.GetByID(fresh.ID); cart == nil {
		t.Fatalf("fresh cart should survive")
	}
	var items int64
	db.Model(&models.CartItem{}).Count(&items)
	if items != 0 {
		t.Fatalf("expected stale cart items removed, got %d", items)
	}
}
