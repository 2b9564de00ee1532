package service

import (
	"errors"
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/google/uuid"
)

// CartProduct 购物车项中的精简商品
type CartProduct struct {
	ID        uint         `json:"id"`
	Title     string       `json:"title"`
	UnitPrice models.Money `json:"unit_price"`
}

// CartItemView 购物车项响应
type CartItemView struct {
	ID         uint         `json:"id"`
	Product    CartProduct  `json:"product"`
	Quantity   int          `json:"quantity"`
	TotalPrice models.Money `json:"total_price"`
}

// CartView 购物车响应
type CartView struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	Items      []CartItemView `json:"items"`
	TotalPrice models.Money   `json:"total_price"`
}

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// NormalizeCartID 校验购物车 ID 格式，非法 ID 视为不存在
func NormalizeCartID(raw string) (string, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// Create 创建空购物车
func (s *CartService) Create() (*CartView, error) {
	cart := &models.Cart{}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return buildCartView(cart), nil
}

// Get 获取购物车
func (s *CartService) Get(cartID string) (*CartView, error) {
	id, ok := NormalizeCartID(cartID)
	if !ok {
		return nil, ErrCartNotFound
	}
	cart, err := s.cartRepo.GetWithItems(id)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return buildCartView(cart), nil
}

// Delete 删除购物车
func (s *CartService) Delete(cartID string) error {
	id, ok := NormalizeCartID(cartID)
	if !ok {
		return ErrCartNotFound
	}
	deleted, err := s.cartRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCartNotFound
	}
	return nil
}

func (s *CartService) ensureCart(cartID string) (string, error) {
	id, ok := NormalizeCartID(cartID)
	if !ok {
		return "", ErrCartNotFound
	}
	cart, err := s.cartRepo.GetByID(id)
	if err != nil {
		return "", err
	}
	if cart == nil {
		return "", ErrCartNotFound
	}
	return id, nil
}

// ListItems 购物车项列表
func (s *CartService) ListItems(cartID string) ([]CartItemView, error) {
	id, err := s.ensureCart(cartID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	views := make([]CartItemView, 0, len(items))
	for _, item := range items {
		views = append(views, buildCartItemView(item))
	}
	return views, nil
}

// GetItem 获取购物车项
func (s *CartService) GetItem(cartID string, itemID uint) (*CartItemView, error) {
	id, err := s.ensureCart(cartID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(id, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	view := buildCartItemView(*item)
	return &view, nil
}

// AddItem 加购；已存在同一商品时累加数量
func (s *CartService) AddItem(cartID string, input AddCartItemInput) (*CartItemView, error) {
	if input.Quantity < 1 {
		return nil, ErrQuantityInvalid
	}
	if input.Quantity > constants.MaxItemQuantity {
		return nil, ErrQuantityTooLarge
	}
	id, err := s.ensureCart(cartID)
	if err != nil {
		return nil, err
	}
	exists, err := s.productRepo.Exists(input.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProductRefNotFound
	}
	item, err := s.cartRepo.AddQuantity(id, input.ProductID, input.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrQuantityLimitExceeded) {
			return nil, ErrQuantityTooLarge
		}
		return nil, err
	}
	return s.GetItem(id, item.ID)
}

// UpdateItemQuantity 修改购物车项数量
func (s *CartService) UpdateItemQuantity(cartID string, itemID uint, quantity int) (*CartItemView, error) {
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}
	if quantity > constants.MaxItemQuantity {
		return nil, ErrQuantityTooLarge
	}
	id, err := s.ensureCart(cartID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(id, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.UpdateItemQuantity(item, quantity); err != nil {
		return nil, err
	}
	view := buildCartItemView(*item)
	return &view, nil
}

// DeleteItem 删除购物车项
func (s *CartService) DeleteItem(cartID string, itemID uint) error {
	id, err := s.ensureCart(cartID)
	if err != nil {
		return err
	}
	deleted, err := s.cartRepo.DeleteItem(id, itemID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCartItemNotFound
	}
	return nil
}

// PurgeStale 清理过期购物车
func (s *CartService) PurgeStale(maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	return s.cartRepo.DeleteStale(time.Now().Add(-maxAge))
}

func buildCartItemView(item models.CartItem) CartItemView {
	view := CartItemView{
		ID:       item.ID,
		Quantity: item.Quantity,
	}
	if item.Product != nil {
		view.Product = CartProduct{
			ID:        item.Product.ID,
			Title:     item.Product.Title,
			UnitPrice: item.Product.UnitPrice,
		}
	} else {
		view.Product = CartProduct{ID: item.ProductID}
	}
	view.TotalPrice = view.Product.UnitPrice.MulInt(item.Quantity)
	return view
}

func buildCartView(cart *models.Cart) *CartView {
	view := &CartView{
		ID:        cart.ID,
		CreatedAt: cart.CreatedAt,
		Items:     make([]CartItemView, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		itemView := buildCartItemView(item)
		view.TotalPrice = view.TotalPrice.Add(itemView.TotalPrice)
		view.Items = append(view.Items, itemView)
	}
	return view
}
