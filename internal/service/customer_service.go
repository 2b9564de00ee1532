package service

import (
	"strings"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// CustomerView 顾客响应
type CustomerView struct {
	ID          uint         `json:"id"`
	UserID      uint         `json:"user_id"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	BirthDate   *models.Date `json:"birth_date"`
	Membership  string       `json:"membership"`
	OrdersCount *int64       `json:"orders_count,omitempty"`
}

// CustomerPatch 顾客部分更新，nil 字段保持不变
type CustomerPatch struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	BirthDate  *models.Date
	Membership *string
}

// AddressInput 地址输入
type AddressInput struct {
	Street string
	City   string
}

// NotifyInput 群发通知输入
type NotifyInput struct {
	Subject string
	Message string
	Locale  string
}

// CustomerService 顾客服务
type CustomerService struct {
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
	userRepo     repository.UserRepository
	queueClient  *queue.Client
}

// NewCustomerService 创建顾客服务
func NewCustomerService(customerRepo repository.CustomerRepository, addressRepo repository.AddressRepository, userRepo repository.UserRepository, queueClient *queue.Client) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		userRepo:     userRepo,
		queueClient:  queueClient,
	}
}

// IsValidMembership 判断会员等级是否合法
func IsValidMembership(value string) bool {
	_, ok := constants.MembershipLabels[value]
	return ok
}

// GetMe 获取当前用户的顾客档案，不存在时创建
func (s *CustomerService) GetMe(userID uint) (*CustomerView, error) {
	customer, err := s.customerRepo.GetOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}
	return buildCustomerView(customer), nil
}

// UpdateMe 更新当前用户档案，会员等级不可自行修改
func (s *CustomerService) UpdateMe(userID uint, patch CustomerPatch) (*CustomerView, error) {
	customer, err := s.customerRepo.GetOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}
	patch.Membership = nil
	return s.applyPatch(customer, patch)
}

// List 后台顾客列表
func (s *CustomerService) List(filter repository.CustomerListFilter) ([]repository.CustomerStat, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Membership != "" && !IsValidMembership(filter.Membership) {
		return nil, 0, ErrMembershipInvalid
	}
	stats, total, err := s.customerRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	if stats == nil {
		stats = []repository.CustomerStat{}
	}
	return stats, total, nil
}

// Get 后台顾客详情（附带订单数量）
func (s *CustomerService) Get(id uint) (*CustomerView, error) {
	customer, err := s.load(id)
	if err != nil {
		return nil, err
	}
	count, err := s.customerRepo.CountOrders(id)
	if err != nil {
		return nil, err
	}
	view := buildCustomerView(customer)
	view.OrdersCount = &count
	return view, nil
}

// Update 后台更新顾客
func (s *CustomerService) Update(id uint, patch CustomerPatch) (*CustomerView, error) {
	customer, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return s.applyPatch(customer, patch)
}

// SetMembership 修改会员等级
func (s *CustomerService) SetMembership(id uint, membership string) (*CustomerView, error) {
	return s.Update(id, CustomerPatch{Membership: &membership})
}

// Delete 删除顾客；存在订单时拒绝，地址级联删除
func (s *CustomerService) Delete(id uint) error {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.customerRepo.WithTx(tx)
		customer, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if customer == nil {
			return ErrCustomerNotFound
		}
		count, err := repo.CountOrders(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCustomerHasOrders
		}
		return repo.DeleteCascade(id)
	})
	return mapForeignKeyViolation(err, ErrCustomerHasOrders)
}

// ListAddresses 当前用户地址列表
func (s *CustomerService) ListAddresses(userID uint) ([]models.Address, error) {
	customer, err := s.customerRepo.GetOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.addressRepo.ListByCustomer(customer.ID)
}

// AddAddress 新增地址
func (s *CustomerService) AddAddress(userID uint, input AddressInput) (*models.Address, error) {
	customer, err := s.customerRepo.GetOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}
	address := &models.Address{
		Street:     strings.TrimSpace(input.Street),
		City:       strings.TrimSpace(input.City),
		CustomerID: customer.ID,
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress 删除当前用户的地址
func (s *CustomerService) DeleteAddress(userID, addressID uint) error {
	customer, err := s.customerRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrAddressNotFound
	}
	address, err := s.addressRepo.GetByCustomerAndID(customer.ID, addressID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrAddressNotFound
	}
	return s.addressRepo.Delete(address.ID)
}

// Notify 向全部顾客群发通知（异步）
func (s *CustomerService) Notify(input NotifyInput) error {
	if !s.queueClient.Enabled() {
		return ErrQueueUnavailable
	}
	return s.queueClient.EnqueueCustomersNotify(queue.CustomersNotifyPayload{
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
		Locale:  input.Locale,
	})
}

func (s *CustomerService) load(id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (s *CustomerService) applyPatch(customer *models.Customer, patch CustomerPatch) (*CustomerView, error) {
	if patch.Membership != nil {
		if !IsValidMembership(*patch.Membership) {
			return nil, ErrMembershipInvalid
		}
		customer.Membership = *patch.Membership
	}
	if patch.Phone != nil {
		customer.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.BirthDate != nil {
		customer.BirthDate = patch.BirthDate
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if patch.FirstName != nil || patch.LastName != nil {
			userRepo := s.userRepo.WithTx(tx)
			user, err := userRepo.GetByID(customer.UserID)
			if err != nil {
				return err
			}
			if user == nil {
				return ErrNotFound
			}
			if patch.FirstName != nil {
				user.FirstName = strings.TrimSpace(*patch.FirstName)
			}
			if patch.LastName != nil {
				user.LastName = strings.TrimSpace(*patch.LastName)
			}
			if err := userRepo.Update(user); err != nil {
				return err
			}
			customer.User = user
		}
		return s.customerRepo.WithTx(tx).Update(customer)
	})
	if err != nil {
		return nil, err
	}
	return buildCustomerView(customer), nil
}

func buildCustomerView(customer *models.Customer) *CustomerView {
	view := &CustomerView{
		ID:         customer.ID,
		UserID:     customer.UserID,
		Phone:      customer.Phone,
		BirthDate:  customer.BirthDate,
		Membership: customer.Membership,
	}
	if customer.User != nil {
		view.FirstName = customer.User.FirstName
		view.LastName = customer.User.LastName
		view.Email = customer.User.Email
	}
	return view
}
