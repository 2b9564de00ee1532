package repository

import (
	"testing"

	"github.com/storefront-next/internal/models"
)

func TestOrderUpdatePaymentStatusIsConditional(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	customer := seedCustomer(t, db, "erin@example.com", "Erin")
	order := &models.Order{CustomerID: customer.ID, PaymentStatus: "P"}
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	ok, err := repo.UpdatePaymentStatus(order.ID, "P", "C")
	if err != nil || !ok {
		t.Fatalf("expected update to apply, ok=%v err=%v", ok, err)
	}
	ok, err = repo.UpdatePaymentStatus(order.ID, "P", "F")
	if err != nil || ok {
		t.Fatalf("expected stale update to be rejected, ok=%v err=%v", ok, err)
	}
}

func TestOrderGetByIDAndCustomerScopesOwnership(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	collection := seedCollection(t, db, "Books")
	product := seedProduct(t, db, collection.ID, "Novel", "12.00", 3)
	owner := seedCustomer(t, db, "frank@example.com", "Frank")
	other := seedCustomer(t, db, "gina@example.com", "Gina")

	order := &models.Order{CustomerID: owner.ID, PaymentStatus: "P"}
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := repo.CreateItems([]models.OrderItem{{OrderID: order.ID, ProductID: product.ID, Quantity: 2, UnitPrice: product.UnitPrice}}); err != nil {
		t.Fatalf("create items failed: %v", err)
	}

	got, err := repo.GetByIDAndCustomer(order.ID, owner.ID)
	if err != nil || got == nil {
		t.Fatalf("expected owner to load order, got %+v err=%v", got, err)
	}
	if len(got.Items) != 1 || got.Items[0].Product == nil || got.Customer == nil || got.Customer.User == nil {
		t.Fatalf("expected order details preloaded, got %+v", got)
	}
	if got, _ := repo.GetByIDAndCustomer(order.ID, other.ID); got != nil {
		t.Fatalf("other customer must not see the order")
	}
}
