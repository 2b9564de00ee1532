package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceTestEnv struct {
	db          *gorm.DB
	cfg         *config.Config
	products    *ProductService
	collections *CollectionService
	carts       *CartService
	orders      *OrderService
	customers   *CustomerService
	users       *UserAuthService
	tags        *TagService
}

func setupServiceTest(t *testing.T) *serviceTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), models.GormConfig(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	previous := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = previous })

	cfg := config.Default()
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, RequireLetter: true, RequireNumber: true}
	cfg.Queue.Enabled = false
	queueClient, _ := queue.NewClient(&cfg.Queue)

	productRepo := repository.NewProductRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	userRepo := repository.NewUserRepository(db)

	return &serviceTestEnv{
		db:          db,
		cfg:         cfg,
		products:    NewProductService(cfg, productRepo, collectionRepo, promotionRepo),
		collections: NewCollectionService(collectionRepo, productRepo),
		carts:       NewCartService(cartRepo, productRepo),
		orders:      NewOrderService(orderRepo, cartRepo, customerRepo, queueClient),
		customers:   NewCustomerService(customerRepo, repository.NewAddressRepository(db), userRepo, queueClient),
		users:       NewUserAuthService(cfg, userRepo, customerRepo),
		tags:        NewDefaultTagService(repository.NewTagRepository(db), productRepo, collectionRepo, customerRepo),
	}
}

func seedTestCollection(t *testing.T, db *gorm.DB, title string) *models.Collection {
	t.Helper()
	collection := &models.Collection{Title: title}
	if err := db.Create(collection).Error; err != nil {
		t.Fatalf("create collection failed: %v", err)
	}
	return collection
}

func seedTestProduct(t *testing.T, db *gorm.DB, collectionID uint, title, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:        title,
		Slug:         Slugify(title),
		UnitPrice:    models.MustMoney(price),
		Inventory:    20,
		CollectionID: collectionID,
	}
	if err := db.Omit("Promotions").Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash", FirstName: "Ada", LastName: "Lovelace", Status: "active"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}
