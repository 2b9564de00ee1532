package service

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
)

func TestPriceWithTax(t *testing.T) {
	got := PriceWithTax(models.MustMoney("10.00"), decimal.RequireFromString("0.19"))
	if got.String() != "11.90" {
		t.Fatalf("expected 11.90, got %s", got.String())
	}
	got = PriceWithTax(models.MustMoney("9.99"), decimal.RequireFromString("0.19"))
	if got.String() != "11.89" {
		t.Fatalf("expected 11.89, got %s", got.String())
	}
}

func TestParseTaxRateFallsBack(t *testing.T) {
	if !parseTaxRate("abc").Equal(defaultTaxRate) {
		t.Fatalf("expected default rate for invalid input")
	}
	if !parseTaxRate("-0.1").Equal(defaultTaxRate) {
		t.Fatalf("expected default rate for negative input")
	}
	if !parseTaxRate(" 0.07 ").Equal(decimal.RequireFromString("0.07")) {
		t.Fatalf("expected trimmed rate to be parsed")
	}
}

func TestInventoryStatus(t *testing.T) {
	if InventoryStatus(9, 10) != constants.InventoryStatusLow {
		t.Fatalf("expected low below threshold")
	}
	if InventoryStatus(10, 10) != constants.InventoryStatusOK {
		t.Fatalf("expected ok at threshold")
	}
}

func TestSlugify(t *testing.T) {
	if got := Slugify("  Dark Roast Coffee!! "); got != "dark-roast-coffee" {
		t.Fatalf("unexpected slug: %s", got)
	}
	if got := Slugify("???"); got != "product" {
		t.Fatalf("expected fallback slug, got %s", got)
	}
}

func TestProductCreateValidation(t *testing.T) {
	env := setupServiceTest(t)
	collection := seedTestCollection(t, env.db, "Tools")

	base := ProductInput{
		Title:        "Hammer",
		UnitPrice:    decimal.RequireFromString("12.50"),
		Inventory:    5,
		CollectionID: collection.ID,
	}

	cases := []struct {
		name   string
		mutate func(*ProductInput)
		want   error
	}{
		{"price too low", func(in *ProductInput) { in.UnitPrice = decimal.RequireFromString("0.99") }, ErrUnitPriceInvalid},
		{"price too high", func(in *ProductInput) { in.UnitPrice = decimal.RequireFromString("10000") }, ErrUnitPriceInvalid},
		{"too many decimals", func(in *ProductInput) { in.UnitPrice = decimal.RequireFromString("1.234") }, ErrUnitPriceInvalid},
		{"negative inventory", func(in *ProductInput) { in.Inventory = -1 }, ErrInventoryInvalid},
		{"unknown collection", func(in *ProductInput) { in.CollectionID = collection.ID + 50 }, ErrCollectionRefNotFound},
	}
	for _, tc := range cases {
		input := base
		tc.mutate(&input)
		if _, err := env.products.Create(input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	view, err := env.products.Create(base)
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if view.Slug != "hammer" {
		t.Fatalf("expected generated slug, got %s", view.Slug)
	}
	if view.PriceWithTax.String() != "14.88" {
		t.Fatalf("unexpected price with tax: %s", view.PriceWithTax.String())
	}
	if view.InventoryStatus != constants.InventoryStatusLow {
		t.Fatalf("expected low inventory status, got %s", view.InventoryStatus)
	}

	public, err := env.products.Get(view.ID, false)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if public.InventoryStatus != "" {
		t.Fatalf("inventory status must not be exposed publicly")
	}
}

func TestProductUpdateAndPromotions(t *testing.T) {
	env := setupServiceTest(t)
	collection := seedTestCollection(t, env.db, "Garden")
	product := seedTestProduct(t, env.db, collection.ID, "Shovel", "20.00")

	price := decimal.RequireFromString("25.00")
	updated, err := env.products.Update(product.ID, ProductPatch{UnitPrice: &price})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.UnitPrice.String() != "25.00" || updated.Title != "Shovel" {
		t.Fatalf("unexpected product after patch: %+v", updated.Product)
	}

	if _, err := env.products.Update(product.ID+99, ProductPatch{}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}

	promotion := &models.Promotion{Description: "Spring sale", Discount: 0.1}
	if err := env.db.Create(promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	if _, err := env.products.SetPromotions(product.ID, []uint{promotion.ID, promotion.ID + 10}); !errors.Is(err, ErrPromotionRefNotFound) {
		t.Fatalf("expected promotion ref not found, got %v", err)
	}
	withPromo, err := env.products.SetPromotions(product.ID, []uint{promotion.ID, promotion.ID})
	if err != nil {
		t.Fatalf("set promotions failed: %v", err)
	}
	if len(withPromo.Promotions) != 1 {
		t.Fatalf("expected 1 promotion, got %d", len(withPromo.Promotions))
	}
	cleared, err := env.products.SetPromotions(product.ID, nil)
	if err != nil {
		t.Fatalf("clear promotions failed: %v", err)
	}
	if len(cleared.Promotions) != 0 {
		t.Fatalf("expected promotions cleared, got %d", len(cleared.Promotions))
	}
}

func TestProductDeleteGuardedByOrderItems(t *testing.T) {
	env := setupServiceTest(t)
	collection := seedTestCollection(t, env.db, "Office")
	ordered := seedTestProduct(t, env.db, collection.ID, "Stapler", "8.00")
	free := seedTestProduct(t, env.db, collection.ID, "Paper", "4.00")
	user := seedTestUser(t, env.db, "office@example.com")

	cart, _ := env.carts.Create()
	if _, err := env.carts.AddItem(cart.ID, AddCartItemInput{ProductID: ordered.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := env.orders.CreateFromCart(user.ID, cart.ID); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := env.products.Delete(ordered.ID); !errors.Is(err, ErrProductHasOrderItems) {
		t.Fatalf("expected delete refused, got %v", err)
	}
	if err := env.products.Delete(free.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if _, err := env.products.Get(free.ID, true); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected deleted product not found, got %v", err)
	}
	if err := env.products.Delete(free.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestCleanInventory(t *testing.T) {
	env := setupServiceTest(t)
	collection := seedTestCollection(t, env.db, "Toys")
	first := seedTestProduct(t, env.db, collection.ID, "Kite", "15.00")
	second := seedTestProduct(t, env.db, collection.ID, "Yo-yo", "3.00")

	updated, err := env.products.CleanInventory([]uint{first.ID, second.ID, first.ID})
	if err != nil {
		t.Fatalf("clean inventory failed: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 updated, got %d", updated)
	}
	view, _ := env.products.Get(first.ID, true)
	if view.Inventory != 0 {
		t.Fatalf("expected inventory cleared, got %d", view.Inventory)
	}
}

func TestCollectionPatchClearsFeaturedAndRejectsBlankTitle(t *testing.T) {
	env := setupServiceTest(t)
	created, err := env.collections.Create(CollectionInput{Title: "Garden"})
	if err != nil {
		t.Fatalf("create collection failed: %v", err)
	}
	product := seedTestProduct(t, env.db, created.ID, "Shovel", "12.00")
	if _, err := env.collections.Patch(created.ID, CollectionPatch{FeaturedProductID: &product.ID}); err != nil {
		t.Fatalf("set featured failed: %v", err)
	}

	title := "Garden & Patio"
	kept, err := env.collections.Patch(created.ID, CollectionPatch{Title: &title})
	if err != nil {
		t.Fatalf("patch title failed: %v", err)
	}
	if kept.FeaturedProductID == nil || *kept.FeaturedProductID != product.ID {
		t.Fatalf("patch without featured field should keep it, got %v", kept.FeaturedProductID)
	}

	cleared, err := env.collections.Patch(created.ID, CollectionPatch{ClearFeatured: true})
	if err != nil {
		t.Fatalf("clear featured failed: %v", err)
	}
	if cleared.FeaturedProductID != nil {
		t.Fatalf("expected featured product cleared, got %v", *cleared.FeaturedProductID)
	}

	blank := "   "
	if _, err := env.collections.Patch(created.ID, CollectionPatch{Title: &blank}); !errors.Is(err, ErrTitleBlank) {
		t.Fatalf("expected blank title rejected on patch, got %v", err)
	}
	if _, err := env.collections.Create(CollectionInput{Title: " "}); !errors.Is(err, ErrTitleBlank) {
		t.Fatalf("expected blank title rejected on create, got %v", err)
	}
	current, err := env.collections.Get(created.ID)
	if err != nil {
		t.Fatalf("get collection failed: %v", err)
	}
	if current.Title != "Garden & Patio" {
		t.Fatalf("title should be unchanged, got %q", current.Title)
	}
}

func TestCollectionLifecycle(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	created, err := env.collections.Create(CollectionInput{Title: " Kitchen "})
	if err != nil {
		t.Fatalf("create collection failed: %v", err)
	}
	if created.Title != "Kitchen" || created.ProductsCount != 0 {
		t.Fatalf("unexpected collection: %+v", created)
	}

	missing := uint(9999)
	if _, err := env.collections.Patch(created.ID, CollectionPatch{FeaturedProductID: &missing}); !errors.Is(err, ErrProductRefNotFound) {
		t.Fatalf("expected featured product ref error, got %v", err)
	}

	product := seedTestProduct(t, env.db, created.ID, "Pan", "30.00")
	featured, err := env.collections.Patch(created.ID, CollectionPatch{FeaturedProductID: &product.ID})
	if err != nil {
		t.Fatalf("patch collection failed: %v", err)
	}
	if featured.FeaturedProductID == nil || *featured.FeaturedProductID != product.ID {
		t.Fatalf("expected featured product set")
	}
	if featured.ProductsCount != 1 {
		t.Fatalf("expected products count 1, got %d", featured.ProductsCount)
	}

	list, total, err := env.collections.List(ctx, repository.CollectionListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list collections failed: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected 1 collection, got %d", total)
	}

	if err := env.collections.Delete(created.ID); !errors.Is(err, ErrCollectionHasProducts) {
		t.Fatalf("expected delete refused, got %v", err)
	}
	if err := env.products.Delete(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := env.collections.Delete(created.ID); err != nil {
		t.Fatalf("delete collection failed: %v", err)
	}
	if _, err := env.collections.Get(created.ID); !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("expected collection not found, got %v", err)
	}
}
