package provider

import (
	"github.com/storefront-next/internal/authz"
	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"
	"github.com/storefront-next/internal/upload"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	CustomerRepo     repository.CustomerRepository
	AddressRepo      repository.AddressRepository
	CollectionRepo   repository.CollectionRepository
	ProductRepo      repository.ProductRepository
	PromotionRepo    repository.PromotionRepository
	ProductImageRepo repository.ProductImageRepository
	ReviewRepo       repository.ReviewRepository
	CartRepo         repository.CartRepository
	OrderRepo        repository.OrderRepository
	TagRepo          repository.TagRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	UploadService       *service.UploadService
	ProductService      *service.ProductService
	ProductMediaService *service.ProductMediaService
	CollectionService   *service.CollectionService
	PromotionService    *service.PromotionService
	CartService         *service.CartService
	OrderService        *service.OrderService
	CustomerService     *service.CustomerService
	TagService          *service.TagService
	NotificationService *service.NotificationService
	PlaygroundService   *service.PlaygroundService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.CollectionRepo = repository.NewCollectionRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.ProductImageRepo = repository.NewProductImageRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.TagRepo = repository.NewTagRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	storage, err := upload.New(&c.Config.Upload)
	if err != nil {
		// 存储不可用时仅图片上传失败，其他接口照常
		logger.Warnw("provider_init_upload_storage_failed", "provider", c.Config.Upload.Provider, "error", err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.CustomerRepo)
	c.UploadService = service.NewUploadService(&c.Config.Upload, storage)
	c.ProductService = service.NewProductService(c.Config, c.ProductRepo, c.CollectionRepo, c.PromotionRepo)
	c.ProductMediaService = service.NewProductMediaService(c.ProductRepo, c.ProductImageRepo, c.ReviewRepo, c.UploadService)
	c.CollectionService = service.NewCollectionService(c.CollectionRepo, c.ProductRepo)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.CustomerRepo, c.QueueClient)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo, c.AddressRepo, c.UserRepo, c.QueueClient)
	c.TagService = service.NewDefaultTagService(c.TagRepo, c.ProductRepo, c.CollectionRepo, c.CustomerRepo)
	c.NotificationService = service.NewNotificationService(c.OrderRepo, c.CustomerRepo, c.EmailService)
	c.PlaygroundService = service.NewPlaygroundService(c.Config.Playground)
}
