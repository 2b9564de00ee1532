package main

import (
	"errors"
	"fmt"

	"github.com/storefront-next/internal/authz"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/service"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const demoPassword = "Passw0rd123"

type seedProduct struct {
	Title       string
	Slug        string
	Description string
	Price       string
	Inventory   int
	Collection  string
	Tags        []string
}

var seedCollections = []string{"Beverages", "Bakery", "Pantry"}

var seedPromotions = []models.Promotion{
	{Description: "Spring sale", Discount: 0.1},
	{Description: "Clearance", Discount: 0.25},
}

var seedProducts = []seedProduct{
	{Title: "Cold Brew Coffee", Slug: "cold-brew-coffee", Description: "Slow steeped for 18 hours.", Price: "4.50", Inventory: 120, Collection: "Beverages", Tags: []string{"bestseller"}},
	{Title: "Jasmine Green Tea", Slug: "jasmine-green-tea", Description: "Loose leaf, 100g tin.", Price: "12.00", Inventory: 8, Collection: "Beverages", Tags: []string{"organic"}},
	{Title: "Sourdough Loaf", Slug: "sourdough-loaf", Description: "Baked every morning.", Price: "6.75", Inventory: 30, Collection: "Bakery", Tags: []string{"bestseller", "local"}},
	{Title: "Almond Croissant", Slug: "almond-croissant", Description: "Butter croissant with almond cream.", Price: "3.95", Inventory: 5, Collection: "Bakery"},
	{Title: "Extra Virgin Olive Oil", Slug: "extra-virgin-olive-oil", Description: "Cold pressed, 500ml.", Price: "18.40", Inventory: 60, Collection: "Pantry", Tags: []string{"organic"}},
	{Title: "Sea Salt Flakes", Slug: "sea-salt-flakes", Description: "Hand harvested.", Price: "7.20", Inventory: 0, Collection: "Pantry", Tags: []string{"local"}},
}

var seedStaff = []struct {
	Username string
	Role     string
}{
	{Username: "catalog", Role: "catalog_manager"},
	{Username: "orders", Role: "order_manager"},
	{Username: "auditor", Role: "readonly_auditor"},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to init authz: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		stdLog.Fatalf("Failed to bootstrap roles: %v", err)
	}

	summary, err := run(models.DB, authzService)
	if err != nil {
		stdLog.Fatalf("Seed failed: %v", err)
	}
	logger.Infow("seed_done",
		"collections", summary.Collections,
		"products", summary.Products,
		"promotions", summary.Promotions,
		"tags", summary.Tags,
		"staff", summary.Staff,
		"orders", summary.Orders,
	)
}

type seedSummary struct {
	Collections int
	Products    int
	Promotions  int
	Tags        int
	Staff       int
	Orders      int
}

// run 写入演示数据，重复执行不会产生重复记录
func run(db *gorm.DB, authzService *authz.Service) (*seedSummary, error) {
	if db == nil {
		return nil, errors.New("database not initialized")
	}
	summary := &seedSummary{}

	collectionIDs := make(map[string]uint, len(seedCollections))
	for _, title := range seedCollections {
		collection := models.Collection{}
		result := db.Where("title = ?", title).Attrs(models.Collection{Title: title}).FirstOrCreate(&collection)
		if result.Error != nil {
			return nil, fmt.Errorf("seed collection %s: %w", title, result.Error)
		}
		summary.Collections += int(result.RowsAffected)
		collectionIDs[title] = collection.ID
	}

	promotionIDs := make([]uint, 0, len(seedPromotions))
	for _, item := range seedPromotions {
		promotion := models.Promotion{}
		result := db.Where("description = ?", item.Description).Attrs(item).FirstOrCreate(&promotion)
		if result.Error != nil {
			return nil, fmt.Errorf("seed promotion %s: %w", item.Description, result.Error)
		}
		summary.Promotions += int(result.RowsAffected)
		promotionIDs = append(promotionIDs, promotion.ID)
	}

	tagIDs := make(map[string]uint)
	products := make([]models.Product, 0, len(seedProducts))
	for i, item := range seedProducts {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("seed product %s price: %w", item.Slug, err)
		}
		product := models.Product{}
		result := db.Where("slug = ?", item.Slug).Attrs(models.Product{
			Title:        item.Title,
			Slug:         item.Slug,
			Description:  item.Description,
			UnitPrice:    models.NewMoneyFromDecimal(price),
			Inventory:    item.Inventory,
			CollectionID: collectionIDs[item.Collection],
		}).FirstOrCreate(&product)
		if result.Error != nil {
			return nil, fmt.Errorf("seed product %s: %w", item.Slug, result.Error)
		}
		if result.RowsAffected > 0 {
			summary.Products++
			if i%2 == 0 && len(promotionIDs) > 0 {
				if err := db.Model(&product).Association("Promotions").Append(&models.Promotion{ID: promotionIDs[0]}); err != nil {
					return nil, fmt.Errorf("seed product %s promotions: %w", item.Slug, err)
				}
			}
		}
		products = append(products, product)

		for _, label := range item.Tags {
			tagID, ok := tagIDs[label]
			if !ok {
				tag := models.Tag{}
				tagResult := db.Where("label = ?", label).Attrs(models.Tag{Label: label}).FirstOrCreate(&tag)
				if tagResult.Error != nil {
					return nil, fmt.Errorf("seed tag %s: %w", label, tagResult.Error)
				}
				summary.Tags += int(tagResult.RowsAffected)
				tagID = tag.ID
				tagIDs[label] = tagID
			}
			tagged := models.TaggedItem{}
			if err := db.Where(models.TaggedItem{TagID: tagID, ObjectType: constants.TaggableProduct, ObjectID: product.ID}).
				FirstOrCreate(&tagged).Error; err != nil {
				return nil, fmt.Errorf("seed tagged item %s/%s: %w", label, item.Slug, err)
			}
		}
	}

	customer, err := seedDemoCustomer(db)
	if err != nil {
		return nil, err
	}

	created, err := seedDemoOrder(db, customer, products)
	if err != nil {
		return nil, err
	}
	if created {
		summary.Orders++
	}

	if authzService != nil {
		for _, staff := range seedStaff {
			created, err := seedStaffAdmin(db, authzService, staff.Username, staff.Role)
			if err != nil {
				return nil, err
			}
			if created {
				summary.Staff++
			}
		}
	}

	return summary, nil
}

func seedDemoCustomer(db *gorm.DB) (*models.Customer, error) {
	var user models.User
	err := db.Where("email = ?", "demo@example.com").First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := service.HashPassword(demoPassword)
		if err != nil {
			return nil, err
		}
		user = models.User{
			Email:        "demo@example.com",
			PasswordHash: hash,
			FirstName:    "Demo",
			LastName:     "Shopper",
			Status:       constants.UserStatusActive,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("seed demo user: %w", err)
		}
	}

	customer := models.Customer{}
	if err := db.Where("user_id = ?", user.ID).
		Attrs(models.Customer{UserID: user.ID, Phone: "555-0100", Membership: constants.MembershipSilver}).
		FirstOrCreate(&customer).Error; err != nil {
		return nil, fmt.Errorf("seed demo customer: %w", err)
	}
	address := models.Address{}
	if err := db.Where("customer_id = ?", customer.ID).
		Attrs(models.Address{CustomerID: customer.ID, Street: "1 Market Street", City: "Springfield"}).
		FirstOrCreate(&address).Error; err != nil {
		return nil, fmt.Errorf("seed demo address: %w", err)
	}
	return &customer, nil
}

func seedDemoOrder(db *gorm.DB, customer *models.Customer, products []models.Product) (bool, error) {
	if customer == nil || len(products) < 2 {
		return false, nil
	}
	var count int64
	if err := db.Model(&models.Order{}).Where("customer_id = ?", customer.ID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		order := models.Order{CustomerID: customer.ID, PaymentStatus: constants.PaymentStatusComplete}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		items := []models.OrderItem{
			{OrderID: order.ID, ProductID: products[0].ID, Quantity: 2, UnitPrice: products[0].UnitPrice},
			{OrderID: order.ID, ProductID: products[1].ID, Quantity: 1, UnitPrice: products[1].UnitPrice},
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return false, fmt.Errorf("seed demo order: %w", err)
	}
	return true, nil
}

func seedStaffAdmin(db *gorm.DB, authzService *authz.Service, username, role string) (bool, error) {
	var admin models.Admin
	err := db.Where("username = ?", username).First(&admin).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	hash, err := service.HashPassword(demoPassword)
	if err != nil {
		return false, err
	}
	admin = models.Admin{Username: username, PasswordHash: hash}
	if err := db.Create(&admin).Error; err != nil {
		return false, fmt.Errorf("seed admin %s: %w", username, err)
	}
	if err := authzService.SetAdminRoles(admin.ID, []string{role}); err != nil {
		return false, fmt.Errorf("seed admin %s roles: %w", username, err)
	}
	return true, nil
}
