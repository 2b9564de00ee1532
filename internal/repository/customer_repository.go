package repository

import (
	"errors"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const customerStatSelect = "customers.id, customers.user_id, customers.phone, customers.birth_date, customers.membership, " +
	"users.first_name, users.last_name, users.email, " +
	"(SELECT COUNT(*) FROM orders WHERE orders.customer_id = customers.id) AS orders_count"

// CustomerRepository 顾客数据访问接口
type CustomerRepository interface {
	List(filter CustomerListFilter) ([]CustomerStat, int64, error)
	GetByID(id uint) (*models.Customer, error)
	GetByUserID(userID uint) (*models.Customer, error)
	GetOrCreateByUserID(userID uint) (*models.Customer, error)
	ListAllWithUser() ([]models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	DeleteCascade(id uint) error
	CountOrders(customerID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormCustomerRepository
}

// GormCustomerRepository GORM 实现
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建顾客仓库
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) *GormCustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// List 顾客列表（附带订单数量），按姓名排序
func (r *GormCustomerRepository) List(filter CustomerListFilter) ([]CustomerStat, int64, error) {
	query := r.db.Table("customers").Joins("JOIN users ON users.id = customers.user_id")
	if filter.Membership != "" {
		query = query.Where("customers.membership = ?", filter.Membership)
	}
	if filter.Search != "" {
		condition, count := buildLikeCondition(r.db, "users.first_name", "users.last_name")
		query = query.Where(condition, repeatLikeArgs(prefixPattern(filter.Search), count)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stats []CustomerStat
	query = query.Select(customerStatSelect).Order("users.first_name ASC, users.last_name ASC, customers.id ASC")
	if err := applyPagination(query, filter.Page, filter.PageSize).Scan(&stats).Error; err != nil {
		return nil, 0, err
	}
	return stats, total, nil
}

// GetByID 根据 ID 获取顾客（附带登录身份）
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Preload("User").First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByUserID 根据登录身份获取顾客
func (r *GormCustomerRepository) GetByUserID(userID uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetOrCreateByUserID 获取或创建顾客档案
func (r *GormCustomerRepository) GetOrCreateByUserID(userID uint) (*models.Customer, error) {
	customer, err := r.GetByUserID(userID)
	if err != nil || customer != nil {
		return customer, err
	}
	if err := r.createIfAbsent(userID); err != nil {
		return nil, err
	}
	return r.GetByUserID(userID)
}

// createIfAbsent 插入顾客档案，user_id 已存在时忽略，不中断所在事务
func (r *GormCustomerRepository) createIfAbsent(userID uint) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Omit(clause.Associations).Create(&models.Customer{UserID: userID}).Error
}

// ListAllWithUser 获取全部顾客及其登录身份
func (r *GormCustomerRepository) ListAllWithUser() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Preload("User").Order("id ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Create 创建顾客
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Omit("User").Create(customer).Error
}

// Update 更新顾客
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Omit("User").Save(customer).Error
}

// DeleteCascade 删除顾客及其地址、标签关联
// 调用方需保证顾客已无订单
func (r *GormCustomerRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.Address{}).Error; err != nil {
			return err
		}
		if err := deleteTaggedItemsFor(tx, constants.TaggableCustomer, id); err != nil {
			return err
		}
		return tx.Delete(&models.Customer{}, id).Error
	})
}

// CountOrders 统计顾客订单数量
func (r *GormCustomerRepository) CountOrders(customerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AddressRepository 地址数据访问接口
type AddressRepository interface {
	ListByCustomer(customerID uint) ([]models.Address, error)
	GetByCustomerAndID(customerID, id uint) (*models.Address, error)
	Create(address *models.Address) error
	Delete(id uint) error
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// ListByCustomer 获取顾客地址
func (r *GormAddressRepository) ListByCustomer(customerID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Where("customer_id = ?", customerID).Order("id ASC").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetByCustomerAndID 获取顾客的指定地址
func (r *GormAddressRepository) GetByCustomerAndID(customerID, id uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.Where("customer_id = ? AND id = ?", customerID, id).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// Create 创建地址
func (r *GormAddressRepository) Create(address *models.Address) error {
	return r.db.Create(address).Error
}

// Delete 删除地址
func (r *GormAddressRepository) Delete(id uint) error {
	return r.db.Delete(&models.Address{}, id).Error
}
