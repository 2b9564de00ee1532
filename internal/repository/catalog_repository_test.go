package repository

import (
	"testing"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

func TestCollectionListIncludesProductsCount(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCollectionRepository(db)
	snacks := seedCollection(t, db, "Snacks")
	drinks := seedCollection(t, db, "Drinks")
	seedProduct(t, db, snacks.ID, "Chips", "2.00", 1)
	seedProduct(t, db, snacks.ID, "Nuts", "3.00", 1)

	stats, total, err := repo.List(CollectionListFilter{})
	if err != nil {
		t.Fatalf("list collections failed: %v", err)
	}
	if total != 2 || len(stats) != 2 {
		t.Fatalf("unexpected collections: total=%d stats=%+v", total, stats)
	}
	if stats[0].Title != "Drinks" || stats[0].ProductsCount != 0 {
		t.Fatalf("expected Drinks first with no products, got %+v", stats[0])
	}
	if stats[1].ID != snacks.ID || stats[1].ProductsCount != 2 {
		t.Fatalf("expected Snacks with 2 products, got %+v", stats[1])
	}

	stat, err := repo.GetStat(drinks.ID)
	if err != nil || stat == nil || stat.Title != "Drinks" {
		t.Fatalf("unexpected stat: %+v err=%v", stat, err)
	}
	if missing, err := repo.GetStat(999); err != nil || missing != nil {
		t.Fatalf("expected nil stat for missing collection, got %+v err=%v", missing, err)
	}
}

func TestProductListFiltersAndOrdering(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewProductRepository(db)
	collection := seedCollection(t, db, "Bakery")
	other := seedCollection(t, db, "Dairy")
	seedProduct(t, db, collection.ID, "Bread", "3.50", 20)
	seedProduct(t, db, collection.ID, "Bagel", "1.25", 4)
	seedProduct(t, db, collection.ID, "Cake", "15.00", 2)
	seedProduct(t, db, other.ID, "Milk", "2.10", 50)

	products, total, err := repo.List(ProductListFilter{CollectionID: collection.ID, Ordering: "-unit_price"})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 3 || products[0].Title != "Cake" || products[2].Title != "Bagel" {
		t.Fatalf("unexpected ordering: %+v", products)
	}

	gt := decimal.RequireFromString("2.00")
	lt := decimal.RequireFromString("10.00")
	products, total, err = repo.List(ProductListFilter{PriceGT: &gt, PriceLT: &lt})
	if err != nil {
		t.Fatalf("list by price failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected Bread and Milk, got %+v", products)
	}

	products, _, err = repo.List(ProductListFilter{Inventory: "low", LowThreshold: 10})
	if err != nil {
		t.Fatalf("list low inventory failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 low inventory products, got %+v", products)
	}

	products, _, err = repo.List(ProductListFilter{Search: "bag"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(products) != 1 || products[0].Title != "Bagel" {
		t.Fatalf("unexpected search result: %+v", products)
	}
}

func TestProductDeleteCascade(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewProductRepository(db)
	collection := seedCollection(t, db, "Garden")
	product := seedProduct(t, db, collection.ID, "Shovel", "20.00", 3)

	collection.FeaturedProductID = &product.ID
	db.Save(collection)
	db.Create(&models.ProductImage{ProductID: product.ID, Image: "/uploads/a.png"})
	db.Create(&models.Review{ProductID: product.ID, Name: "Ann", Description: "Solid"})
	db.Create(&models.TaggedItem{TagID: 1, ObjectType: constants.TaggableProduct, ObjectID: product.ID})
	promotion := &models.Promotion{Description: "Spring", Discount: 0.1}
	db.Create(promotion)
	if err := repo.ReplacePromotions(product, []models.Promotion{*promotion}); err != nil {
		t.Fatalf("replace promotions failed: %v", err)
	}

	if err := repo.DeleteCascade(product.ID); err != nil {
		t.Fatalf("delete cascade failed: %v", err)
	}
	if got, _ := repo.GetByID(product.ID); got != nil {
		t.Fatalf("product should be removed")
	}
	var reloaded models.Collection
	db.First(&reloaded, collection.ID)
	if reloaded.FeaturedProductID != nil {
		t.Fatalf("expected featured product cleared")
	}
	for _, model := range []interface{}{&models.ProductImage{}, &models.Review{}, &models.TaggedItem{}} {
		var count int64
		db.Model(model).Count(&count)
		if count != 0 {
			t.Fatalf("expected %T rows removed, got %d", model, count)
		}
	}
	var joins int64
	db.Table("product_promotions").Count(&joins)
	if joins != 0 {
		t.Fatalf("expected promotion links removed, got %d", joins)
	}
}

func TestProductClearInventory(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewProductRepository(db)
	collection := seedCollection(t, db, "Tools")
	a := seedProduct(t, db, collection.ID, "Hammer", "9.00", 7)
	b := seedProduct(t, db, collection.ID, "Saw", "12.00", 3)

	updated, err := repo.ClearInventory([]uint{a.ID, b.ID, 999})
	if err != nil {
		t.Fatalf("clear inventory failed: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 products updated, got %d", updated)
	}
	reloaded, _ := repo.GetByID(a.ID)
	if reloaded.Inventory != 0 {
		t.Fatalf("expected inventory cleared, got %d", reloaded.Inventory)
	}
}
