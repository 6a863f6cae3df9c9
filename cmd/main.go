package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"buysini_admin_202601/internal/controller"
	"buysini_admin_202601/internal/middleware"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/realtime"
	"buysini_admin_202601/internal/repository"
	"buysini_admin_202601/internal/router"
	"buysini_admin_202601/internal/service"
	"buysini_admin_202601/internal/session"
	"buysini_admin_202601/internal/task"
	"buysini_admin_202601/pkg/database"
)

func main() {
	// .env 不存在不算错误，线上环境直接用真实环境变量
	_ = godotenv.Load()

	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动实时推送与定时任务
	startBackground(deps)

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r, deps.SessionProvider, deps.Controllers)

	// 5. 启动服务
	startServer(r, deps)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB              *gorm.DB
	Hub             *realtime.Hub
	SessionProvider *session.Provider
	Repos           *Repositories
	Services        *Services
	Controllers     *router.Controllers
	Tasks           *Tasks
}

// Repositories 仓库集合
type Repositories struct {
	Admin    repository.AdminRepository
	Order    repository.OrderRepository
	Product  repository.ProductRepository
	Category repository.CategoryRepository
	Customer repository.CustomerRepository
	Banner   repository.BannerRepository
	Promo    repository.PromoRepository
	Payment  repository.PaymentMethodRepository
	Shipping repository.ShippingMethodRepository
	Setting  repository.SettingRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Nav      *service.NavService
	Order    *service.OrderService
	Product  *service.ProductService
	Category *service.CategoryService
	Customer *service.CustomerService
	Banner   *service.BannerService
	Promo    *service.PromoService
	Checkout *service.CheckoutMethodService
	Setting  *service.SettingService
	Storage  *service.StorageService
	Webhook  *service.WebhookService
}

// Tasks 定时任务集合
type Tasks struct {
	CounterReconcile *task.CounterReconcileTask
	SessionSweep     *task.SessionSweepTask
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	db := database.InitDB(
		&database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "buysini"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "buysini_admin"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		// Admin
		&model.Admin{},
		// Order
		&model.Order{}, &model.OrderItem{},
		// Catalog
		&model.Product{}, &model.ProductImage{}, &model.Category{},
		&model.Customer{}, &model.Banner{}, &model.Promo{},
		// Checkout
		&model.PaymentMethod{}, &model.ShippingMethod{},
		// Setting
		&model.Setting{},
	)

	middleware.RegisterAuditCallbacks(db)
	return db
}

// initSessionProvider 初始化会话存储
// 配了 REDIS_URL 用 Redis 做持久副本，否则退回进程内存储
func initSessionProvider(ttl time.Duration) *session.Provider {
	scoped := session.NewMemoryStore(ttl)

	redisURL := getEnv("REDIS_URL", "")
	if redisURL == "" {
		log.Println("未配置 REDIS_URL，会话凭据使用进程内存储（重启后需重新登录）")
		return session.NewProvider(session.NewMemoryStore(ttl), scoped, ttl)
	}

	persistent, err := session.NewRedisStore(redisURL, getEnv("REDIS_PREFIX", "buysini:admin"))
	if err != nil {
		log.Printf("警告: Redis 连接失败，回退到进程内存储: %v", err)
		return session.NewProvider(session.NewMemoryStore(ttl), scoped, ttl)
	}
	return session.NewProvider(persistent, scoped, ttl)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- 基础设施 --------
	hub := realtime.NewHub()

	sessionTTL := 24 * time.Hour
	provider := initSessionProvider(sessionTTL)

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:      getEnv("JWT_SECRET", "buysini-admin-secret-change-in-production"),
		AccessTokenTTL: sessionTTL,
		Issuer:         "buysini-admin",
	})

	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 业务服务 --------
	storageSvc := initStorageService()

	services := &Services{
		Storage: storageSvc,
	}
	services.Auth = service.NewAuthService(repos.Admin, provider)
	services.Nav = service.NewNavService(repos.Order, hub)
	services.Order = service.NewOrderService(repos.Order, repos.Product, repos.Customer, hub)
	services.Product = service.NewProductService(repos.Product, repos.Category)
	services.Category = service.NewCategoryService(repos.Category, repos.Product)
	services.Customer = service.NewCustomerService(repos.Customer)
	services.Banner = service.NewBannerService(repos.Banner)
	services.Promo = service.NewPromoService(repos.Promo)
	services.Checkout = service.NewCheckoutMethodService(repos.Payment, repos.Shipping)
	services.Setting = service.NewSettingService(repos.Setting, hub)
	services.Webhook = service.NewWebhookService(getEnv("ORDER_WEBHOOK_URL", ""), hub)

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:              db,
		Hub:             hub,
		SessionProvider: provider,
		Repos:           repos,
		Services:        services,
		Controllers:     controllers,
		Tasks: &Tasks{
			CounterReconcile: task.NewCounterReconcileTask(services.Nav),
			SessionSweep:     task.NewSessionSweepTask(provider),
		},
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Admin:    repository.NewAdminRepository(db),
		Order:    repository.NewOrderRepository(db),
		Product:  repository.NewProductRepository(db),
		Category: repository.NewCategoryRepository(db),
		Customer: repository.NewCustomerRepository(db),
		Banner:   repository.NewBannerRepository(db),
		Promo:    repository.NewPromoRepository(db),
		Payment:  repository.NewPaymentMethodRepository(db),
		Shipping: repository.NewShippingMethodRepository(db),
		Setting:  repository.NewSettingRepository(db),
	}
}

// initStorageService 初始化存储服务
func initStorageService() *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "./uploads"),
	})
	if err != nil {
		log.Printf("警告: 存储服务初始化失败: %v", err)
		return nil
	}
	return storageSvc
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		Auth:     controller.NewAuthController(svc.Auth, svc.Nav),
		Nav:      controller.NewNavController(svc.Nav),
		Order:    controller.NewOrderController(svc.Order),
		Product:  controller.NewProductController(svc.Product),
		Catalog:  controller.NewCatalogController(svc.Category, svc.Banner, svc.Promo, svc.Customer),
		Checkout: controller.NewCheckoutMethodController(svc.Checkout),
		Setting:  controller.NewSettingController(svc.Setting, svc.Storage),
	}
}

// ==================== 后台任务 ====================

// startBackground 启动实时推送与定时任务
func startBackground(deps *Dependencies) {
	ctx := context.Background()

	// 角标计数器先按数据库真值初始化，再靠订单事件增量维护
	if err := deps.Services.Nav.Start(ctx); err != nil {
		log.Fatalf("导航服务启动失败: %v", err)
	}

	deps.Services.Webhook.Start()

	deps.Tasks.CounterReconcile.Start()
	deps.Tasks.SessionSweep.Start()

	log.Println("后台任务已启动")
}

// stopBackground 停止后台任务
func stopBackground(deps *Dependencies) {
	deps.Tasks.SessionSweep.Stop()
	deps.Tasks.CounterReconcile.Stop()
	deps.Services.Webhook.Stop()
	deps.Services.Nav.Stop()
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, deps *Dependencies) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	stopBackground(deps)

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
