package repository

import (
	"fmt"
	"testing"

	"github.com/storefront-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), models.GormConfig(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func seedCollection(t *testing.T, db *gorm.DB, title string) *models.Collection {
	t.Helper()
	collection := &models.Collection{Title: title}
	if err := db.Create(collection).Error; err != nil {
		t.Fatalf("create collection failed: %v", err)
	}
	return collection
}

func seedProduct(t *testing.T, db *gorm.DB, collectionID uint, title, price string, inventory int) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:        title,
		Slug:         title,
		UnitPrice:    models.MustMoney(price),
		Inventory:    inventory,
		CollectionID: collectionID,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedCustomer(t *testing.T, db *gorm.DB, email, firstName string) *models.Customer {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", FirstName: firstName, LastName: "Doe"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	customer := &models.Customer{UserID: user.ID, Membership: "B"}
	if err := db.Omit("User").Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return customer
}
