package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"buysini_admin_202601/internal/controller"
	"buysini_admin_202601/internal/middleware"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/session"
)

// Controllers 路由需要的所有控制器
type Controllers struct {
	Auth     *controller.AuthController
	Nav      *controller.NavController
	Order    *controller.OrderController
	Product  *controller.ProductController
	Catalog  *controller.CatalogController
	Checkout *controller.CheckoutMethodController
	Setting  *controller.SettingController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, provider *session.Provider, ctls *Controllers) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")

	// auth 公开入口，登录不需要令牌
	auth := api.Group("/auth")
	{
		// POST /api/auth/login
		auth.POST("/login", ctls.Auth.Login)
	}

	// 3. 管理后台路由组，JWT + 会话双重校验
	admin := api.Group("")
	admin.Use(middleware.JWTAuth(), middleware.SessionGuard(provider), middleware.AuditContext())
	{
		// 会话
		authed := admin.Group("/auth")
		{
			authed.POST("/logout", ctls.Auth.Logout)
			authed.GET("/session", ctls.Auth.GetSession)
		}

		// 导航
		nav := admin.Group("/nav")
		{
			nav.GET("/menu", ctls.Nav.GetMenu)
			nav.GET("/regions", ctls.Nav.GetRegions)
			nav.PUT("/regions", ctls.Nav.SetRegion)
			nav.POST("/route", ctls.Nav.RouteChanged)
			nav.POST("/badge/ack", ctls.Nav.AcknowledgeBadge)
			nav.GET("/badge/stream", ctls.Nav.StreamBadge)
		}

		// 订单
		orders := admin.Group("/orders")
		{
			orders.POST("", ctls.Order.CreateOrder)
			orders.GET("", ctls.Order.ListOrders)
			orders.GET("/:id", ctls.Order.GetOrder)
			orders.PUT("/:id/status", ctls.Order.UpdateStatus)
			orders.PUT("/:id/paid", ctls.Order.MarkPaid)
			orders.DELETE("/:id", ctls.Order.DeleteOrder)
		}

		// 商品
		products := admin.Group("/products")
		{
			products.POST("", ctls.Product.CreateProduct)
			products.GET("", ctls.Product.ListProducts)
			products.GET("/:id", ctls.Product.GetProduct)
			products.PUT("/:id", ctls.Product.UpdateProduct)
			products.DELETE("/:id", ctls.Product.DeleteProduct)
		}

		// 分类
		categories := admin.Group("/categories")
		{
			categories.POST("", ctls.Catalog.CreateCategory)
			categories.GET("", ctls.Catalog.ListCategories)
			categories.PUT("/:id", ctls.Catalog.UpdateCategory)
			categories.DELETE("/:id", ctls.Catalog.DeleteCategory)
		}

		// 客户
		customers := admin.Group("/customers")
		{
			customers.POST("", ctls.Catalog.CreateCustomer)
			customers.GET("", ctls.Catalog.ListCustomers)
			customers.PUT("/:id", ctls.Catalog.UpdateCustomer)
			customers.DELETE("/:id", ctls.Catalog.DeleteCustomer)
		}

		// 轮播图
		banners := admin.Group("/banners")
		{
			banners.POST("", ctls.Catalog.CreateBanner)
			banners.GET("", ctls.Catalog.ListBanners)
			banners.PUT("/:id", ctls.Catalog.UpdateBanner)
			banners.DELETE("/:id", ctls.Catalog.DeleteBanner)
		}

		// 促销
		promos := admin.Group("/promos")
		{
			promos.POST("", ctls.Catalog.CreatePromo)
			promos.GET("", ctls.Catalog.ListPromos)
			promos.PUT("/:id", ctls.Catalog.UpdatePromo)
			promos.DELETE("/:id", ctls.Catalog.DeletePromo)
		}

		// 支付方式
		payments := admin.Group("/payment-methods")
		{
			payments.POST("", ctls.Checkout.CreatePaymentMethod)
			payments.GET("", ctls.Checkout.ListPaymentMethods)
			payments.PUT("/:id", ctls.Checkout.UpdatePaymentMethod)
			payments.DELETE("/:id", ctls.Checkout.DeletePaymentMethod)
		}

		// 物流方式
		shipping := admin.Group("/shipping-methods")
		{
			shipping.POST("", ctls.Checkout.CreateShippingMethod)
			shipping.GET("", ctls.Checkout.ListShippingMethods)
			shipping.PUT("/:id", ctls.Checkout.UpdateShippingMethod)
			shipping.DELETE("/:id", ctls.Checkout.DeleteShippingMethod)
		}

		// 设置
		settings := admin.Group("/settings")
		{
			settings.GET("", ctls.Setting.GetSettings)
			settings.PUT("", ctls.Setting.UpsertSetting)
			settings.PUT("/batch", ctls.Setting.BatchUpsertSettings)
			settings.POST("/upload", ctls.Setting.UploadImage)
			settings.GET("/:key", ctls.Setting.GetSetting)
			settings.DELETE("/:key", ctls.Setting.DeleteSetting)
		}

		// 管理员账号管理，admin 角色专属
		admins := admin.Group("/admins")
		{
			admins.PUT("/password", ctls.Auth.ChangePassword)

			adminOnly := admins.Group("")
			adminOnly.Use(middleware.RequireRole(model.RoleAdmin))
			{
				adminOnly.POST("", ctls.Auth.CreateAdmin)
				adminOnly.GET("", ctls.Auth.ListAdmins)
				adminOnly.PUT("/:id", ctls.Auth.UpdateAdmin)
			}
		}
	}
}
