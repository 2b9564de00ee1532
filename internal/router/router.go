package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/storefront-next/internal/authz"
	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	adminhandlers "github.com/storefront-next/internal/http/handlers/admin"
	publichandlers "github.com/storefront-next/internal/http/handlers/public"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

const adminHandlerPackage = "/internal/http/handlers/admin."

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	handlershared.SetupValidator()
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	redisClient := cache.Client()
	loginRule := LoginRateLimitRule(fmt.Sprintf("%s:rate:login", redisPrefix), cfg.Security.LoginRateLimit)
	adminLoginRule := LoginRateLimitRule(fmt.Sprintf("%s:rate:admin_login", redisPrefix), cfg.Security.LoginRateLimit)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 本地上传的商品图片
	uploadPrefix := strings.TrimSpace(cfg.Upload.URLPrefix)
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadPrefix != "" && uploadDir != "" {
		r.Static(uploadPrefix, uploadDir)
	}

	adminJWT := JWTAuthMiddleware(c.AuthService)
	adminRBAC := AdminRBACMiddleware(c.AuthzService)
	userAuth := UserJWTAuthMiddleware(c.UserAuthService)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/playground/hello", publicHandler.PlaygroundHello)

		// 顾客认证
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.GET("/me", userAuth, publicHandler.GetCurrentUser)
		}

		store := apiV1.Group("/store")
		{
			// 商品目录（公开读取）
			store.GET("/products", publicHandler.GetProducts)
			store.GET("/products/:id", publicHandler.GetProduct)
			store.GET("/products/:id/tags", publicHandler.GetProductTags)
			store.GET("/products/:id/images", publicHandler.GetProductImages)
			store.GET("/products/:id/images/:image_id", publicHandler.GetProductImage)
			store.GET("/products/:id/reviews", publicHandler.GetProductReviews)
			store.GET("/products/:id/reviews/:review_id", publicHandler.GetProductReview)
			store.GET("/collections", publicHandler.GetCollections)
			store.GET("/collections/:id", publicHandler.GetCollection)

			// 顾客接口
			user := store.Group("", userAuth)
			{
				user.POST("/products/:id/reviews", publicHandler.CreateProductReview)

				user.POST("/carts", publicHandler.CreateCart)
				user.GET("/carts/:id", publicHandler.GetCart)
				user.DELETE("/carts/:id", publicHandler.DeleteCart)
				user.GET("/carts/:id/items", publicHandler.GetCartItems)
				user.POST("/carts/:id/items", publicHandler.AddCartItem)
				user.GET("/carts/:id/items/:item_id", publicHandler.GetCartItem)
				user.PATCH("/carts/:id/items/:item_id", publicHandler.UpdateCartItem)
				user.DELETE("/carts/:id/items/:item_id", publicHandler.DeleteCartItem)

				user.GET("/customers/me", publicHandler.GetMyCustomer)
				user.PUT("/customers/me", publicHandler.UpdateMyCustomer)
				user.GET("/customers/me/addresses", publicHandler.GetMyAddresses)
				user.POST("/customers/me/addresses", publicHandler.CreateMyAddress)
				user.DELETE("/customers/me/addresses/:address_id", publicHandler.DeleteMyAddress)

				user.POST("/orders", publicHandler.CreateOrder)
				user.GET("/orders", publicHandler.ListOrders)
				user.GET("/orders/:id", publicHandler.GetOrder)
			}

			// 目录与订单写操作（管理员）
			manage := store.Group("", adminJWT, adminRBAC)
			{
				manage.POST("/products", adminHandler.CreateProduct)
				manage.PUT("/products/:id", adminHandler.ReplaceProduct)
				manage.PATCH("/products/:id", adminHandler.PatchProduct)
				manage.DELETE("/products/:id", adminHandler.DeleteProduct)
				manage.POST("/products/:id/images", adminHandler.UploadProductImage)
				manage.DELETE("/products/:id/images/:image_id", adminHandler.DeleteProductImage)
				manage.PUT("/products/:id/reviews/:review_id", adminHandler.ReplaceProductReview)
				manage.PATCH("/products/:id/reviews/:review_id", adminHandler.PatchProductReview)
				manage.DELETE("/products/:id/reviews/:review_id", adminHandler.DeleteProductReview)

				manage.POST("/collections", adminHandler.CreateCollection)
				manage.PUT("/collections/:id", adminHandler.ReplaceCollection)
				manage.PATCH("/collections/:id", adminHandler.PatchCollection)
				manage.DELETE("/collections/:id", adminHandler.DeleteCollection)

				manage.GET("/customers", adminHandler.GetAdminCustomers)
				manage.GET("/customers/:id", adminHandler.GetAdminCustomer)
				manage.PUT("/customers/:id", adminHandler.UpdateAdminCustomer)
				manage.DELETE("/customers/:id", adminHandler.DeleteAdminCustomer)

				manage.PATCH("/orders/:id", adminHandler.AdminUpdateOrderPaymentStatus)
				manage.DELETE("/orders/:id", adminHandler.AdminDeleteOrder)
			}
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)
			admin.GET("/captcha", adminHandler.GetAdminCaptcha)

			// 当前管理员自身信息，仅需登录
			self := admin.Group("", adminJWT)
			{
				self.GET("/me", adminHandler.GetAdminMe)
				self.PUT("/password", adminHandler.UpdateAdminPassword)
				self.GET("/authz/me", adminHandler.GetAuthzMe)
			}

			// 需要鉴权的接口
			authorized := admin.Group("", adminJWT, adminRBAC)
			{
				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.POST("/authz/admins", adminHandler.CreateAuthzAdmin)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/permissions", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products/clean-inventory", adminHandler.CleanInventory)
				authorized.PUT("/products/:id/promotions", adminHandler.SetProductPromotions)
				authorized.GET("/collections", adminHandler.GetAdminCollections)

				// 活动
				authorized.GET("/promotions", adminHandler.GetAdminPromotions)
				authorized.POST("/promotions", adminHandler.CreatePromotion)
				authorized.PUT("/promotions/:id", adminHandler.UpdatePromotion)
				authorized.DELETE("/promotions/:id", adminHandler.DeletePromotion)

				// 顾客管理
				authorized.GET("/customers", adminHandler.GetAdminCustomers)
				authorized.GET("/customers/:id", adminHandler.GetAdminCustomer)
				authorized.PATCH("/customers/:id/membership", adminHandler.UpdateCustomerMembership)
				authorized.POST("/customers/notify", adminHandler.NotifyCustomers)

				// 订单管理
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)

				// 标签
				authorized.GET("/tags", adminHandler.GetAdminTags)
				authorized.POST("/tags", adminHandler.CreateTag)
				authorized.PUT("/tags/:id", adminHandler.UpdateTag)
				authorized.DELETE("/tags/:id", adminHandler.DeleteTag)
				authorized.GET("/taggable-kinds", adminHandler.GetTaggableKinds)
				authorized.GET("/tagged-items", adminHandler.GetTaggedItems)
				authorized.POST("/tagged-items", adminHandler.CreateTaggedItem)
				authorized.DELETE("/tagged-items/:id", adminHandler.DeleteTaggedItem)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !isAdminRoute(item) {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" && segments[0] != "store" {
		return segments[0]
	}
	return segments[1]
}

// isAdminRoute 管理端路由：/admin 下除登录外的全部接口，以及挂载在 /store 下的管理员写操作
func isAdminRoute(item gin.RouteInfo) bool {
	switch item.Path {
	case "/api/v1/admin/login", "/api/v1/admin/captcha",
		"/api/v1/admin/me", "/api/v1/admin/password", "/api/v1/admin/authz/me":
		return false
	}
	if strings.HasPrefix(item.Path, "/api/v1/admin/") {
		return true
	}
	return strings.Contains(item.Handler, adminHandlerPackage)
}
