package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	defaultTaxRate = decimal.RequireFromString("0.19")
	minUnitPrice   = decimal.NewFromInt(1)
	maxUnitPrice   = decimal.RequireFromString("9999.99")
	slugCleaner    = regexp.MustCompile(`[^a-z0-9]+`)
)

// ProductView 商品响应，附带含税价与库存状态
type ProductView struct {
	models.Product
	PriceWithTax    models.Money `json:"price_with_tax"`
	InventoryStatus string       `json:"inventory_status,omitempty"`
}

// ProductInput 创建商品输入
type ProductInput struct {
	Title        string
	Slug         string
	Description  string
	UnitPrice    decimal.Decimal
	Inventory    int
	CollectionID uint
}

// ProductPatch 更新商品输入，nil 字段保持不变
type ProductPatch struct {
	Title        *string
	Slug         *string
	Description  *string
	UnitPrice    *decimal.Decimal
	Inventory    *int
	CollectionID *uint
}

// ProductQuery 商品列表查询
type ProductQuery struct {
	Page         int
	PageSize     int
	CollectionID uint
	Search       string
	PriceGT      *decimal.Decimal
	PriceLT      *decimal.Decimal
	Ordering     string
	Inventory    string
}

// ProductService 商品业务服务
type ProductService struct {
	cfg            *config.Config
	productRepo    repository.ProductRepository
	collectionRepo repository.CollectionRepository
	promotionRepo  repository.PromotionRepository
}

// NewProductService 创建商品服务
func NewProductService(cfg *config.Config, productRepo repository.ProductRepository, collectionRepo repository.CollectionRepository, promotionRepo repository.PromotionRepository) *ProductService {
	return &ProductService{
		cfg:            cfg,
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
		promotionRepo:  promotionRepo,
	}
}

// TaxRate 当前税率
func (s *ProductService) TaxRate() decimal.Decimal {
	if s == nil || s.cfg == nil {
		return defaultTaxRate
	}
	return parseTaxRate(s.cfg.Store.TaxRate)
}

func parseTaxRate(raw string) decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || rate.IsNegative() {
		return defaultTaxRate
	}
	return rate
}

// PriceWithTax 计算含税价
func PriceWithTax(price models.Money, rate decimal.Decimal) models.Money {
	return models.NewMoneyFromDecimal(price.Decimal.Mul(decimal.NewFromInt(1).Add(rate)))
}

// InventoryStatus 库存状态
func InventoryStatus(inventory, threshold int) string {
	if inventory < threshold {
		return constants.InventoryStatusLow
	}
	return constants.InventoryStatusOK
}

func (s *ProductService) lowInventoryThreshold() int {
	if s.cfg == nil || s.cfg.Store.LowInventoryThreshold <= 0 {
		return 10
	}
	return s.cfg.Store.LowInventoryThreshold
}

func (s *ProductService) toView(product models.Product, admin bool) ProductView {
	view := ProductView{
		Product:      product,
		PriceWithTax: PriceWithTax(product.UnitPrice, s.TaxRate()),
	}
	if admin {
		view.InventoryStatus = InventoryStatus(product.Inventory, s.lowInventoryThreshold())
	}
	return view
}

// List 商品列表，admin 为 true 时附带库存状态与库存过滤
func (s *ProductService) List(query ProductQuery, admin bool) ([]ProductView, int64, error) {
	filter := repository.ProductListFilter{
		Page:         query.Page,
		PageSize:     query.PageSize,
		CollectionID: query.CollectionID,
		Search:       strings.TrimSpace(query.Search),
		PriceGT:      query.PriceGT,
		PriceLT:      query.PriceLT,
		Ordering:     query.Ordering,
	}
	if admin {
		filter.Inventory = strings.ToLower(strings.TrimSpace(query.Inventory))
		filter.LowThreshold = s.lowInventoryThreshold()
	}
	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, s.toView(product, admin))
	}
	return views, total, nil
}

// Get 获取商品详情
func (s *ProductService) Get(id uint, admin bool) (*ProductView, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	view := s.toView(*product, admin)
	return &view, nil
}

// Exists 商品是否存在
func (s *ProductService) Exists(id uint) (bool, error) {
	return s.productRepo.Exists(id)
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*ProductView, error) {
	product := &models.Product{
		Title:        strings.TrimSpace(input.Title),
		Slug:         strings.TrimSpace(input.Slug),
		Description:  strings.TrimSpace(input.Description),
		UnitPrice:    models.Money{Decimal: input.UnitPrice},
		Inventory:    input.Inventory,
		CollectionID: input.CollectionID,
	}
	if err := s.validate(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, mapForeignKeyViolation(err, ErrCollectionRefNotFound)
	}
	s.bumpCatalog()
	return s.Get(product.ID, true)
}

// Update 更新商品
func (s *ProductService) Update(id uint, patch ProductPatch) (*ProductView, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if patch.Title != nil {
		product.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Slug != nil {
		product.Slug = strings.TrimSpace(*patch.Slug)
	}
	if patch.Description != nil {
		product.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.UnitPrice != nil {
		product.UnitPrice = models.Money{Decimal: *patch.UnitPrice}
	}
	if patch.Inventory != nil {
		product.Inventory = *patch.Inventory
	}
	if patch.CollectionID != nil {
		product.CollectionID = *patch.CollectionID
	}
	if err := s.validate(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, mapForeignKeyViolation(err, ErrCollectionRefNotFound)
	}
	s.bumpCatalog()
	return s.Get(product.ID, true)
}

func (s *ProductService) validate(product *models.Product) error {
	if product.Title == "" {
		return ErrTitleBlank
	}
	if !validUnitPrice(product.UnitPrice.Decimal) {
		return ErrUnitPriceInvalid
	}
	if product.Inventory < 0 {
		return ErrInventoryInvalid
	}
	if product.Slug == "" {
		product.Slug = Slugify(product.Title)
	}
	collection, err := s.collectionRepo.GetByID(product.CollectionID)
	if err != nil {
		return err
	}
	if collection == nil {
		return ErrCollectionRefNotFound
	}
	return nil
}

func validUnitPrice(price decimal.Decimal) bool {
	if price.LessThan(minUnitPrice) || price.GreaterThan(maxUnitPrice) {
		return false
	}
	return price.Equal(price.Round(2))
}

// Delete 删除商品；被订单项引用时拒绝
func (s *ProductService) Delete(id uint) error {
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		exists, err := repo.Exists(id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrProductNotFound
		}
		count, err := repo.CountOrderItems(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrProductHasOrderItems
		}
		return repo.DeleteCascade(id)
	})
	if err != nil {
		return mapForeignKeyViolation(err, ErrProductHasOrderItems)
	}
	s.bumpCatalog()
	return nil
}

// SetPromotions 替换商品促销活动
func (s *ProductService) SetPromotions(id uint, promotionIDs []uint) (*ProductView, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	ids := uniqueIDs(promotionIDs)
	promotions, err := s.promotionRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(promotions) != len(ids) {
		return nil, ErrPromotionRefNotFound
	}
	if err := s.productRepo.ReplacePromotions(product, promotions); err != nil {
		return nil, err
	}
	return s.Get(id, true)
}

// CleanInventory 批量清空库存，返回更新数量
func (s *ProductService) CleanInventory(ids []uint) (int64, error) {
	updated, err := s.productRepo.ClearInventory(uniqueIDs(ids))
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		s.bumpCatalog()
	}
	return updated, nil
}

func (s *ProductService) bumpCatalog() {
	if err := cache.BumpCatalogVersion(context.Background()); err != nil {
		logger.Warnw("catalog_cache_bump_failed", "error", err)
	}
}

// Slugify 由标题生成路径标识
func Slugify(title string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "product"
	}
	return slug
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
