package provider

import (
	"github.com/dlanguage-api/internal/authz"
	"github.com/dlanguage-api/internal/cache"
	"github.com/dlanguage-api/internal/config"
	"github.com/dlanguage-api/internal/identity"
	"github.com/dlanguage-api/internal/logger"
	"github.com/dlanguage-api/internal/models"
	"github.com/dlanguage-api/internal/queue"
	"github.com/dlanguage-api/internal/repository"
	"github.com/dlanguage-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Identity    identity.Resolver

	// Repositories
	UserRepo          repository.UserRepository
	CategoryRepo      repository.CategoryRepository
	CourseRepo        repository.CourseRepository
	ScheduleRepo      repository.ScheduleRepository
	OfferingRepo      repository.OfferingRepository
	PaymentMethodRepo repository.PaymentMethodRepository
	CartRepo          repository.CartRepository
	InvoiceRepo       repository.InvoiceRepository
	LoginLogRepo      repository.LoginLogRepository
	AuthzAuditRepo    repository.AuthzAuditLogRepository

	// Services
	AuthzService         *authz.Service
	UserAuthService      *service.UserAuthService
	UserService          *service.UserService
	EmailService         *service.EmailService
	CatalogService       *service.CatalogService
	CategoryService      *service.CategoryService
	CourseService        *service.CourseService
	ScheduleService      *service.ScheduleService
	PaymentMethodService *service.PaymentMethodService
	CartService          *service.CartService
	SettlementService    *service.SettlementService
	InvoiceService       *service.InvoiceService
	LoginLogService      *service.LoginLogService
	AuthzAuditService    *service.AuthzAuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Identity:    identity.NewContextResolver(),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	c.UserRepo = repository.NewUserRepository(models.DB)
	c.CategoryRepo = repository.NewCategoryRepository(models.DB)
	c.CourseRepo = repository.NewCourseRepository(models.DB)
	c.ScheduleRepo = repository.NewScheduleRepository(models.DB)
	c.OfferingRepo = repository.NewOfferingRepository(models.DB)
	c.PaymentMethodRepo = repository.NewPaymentMethodRepository(models.DB)
	c.CartRepo = repository.NewCartRepository(models.DB)
	c.InvoiceRepo = repository.NewInvoiceRepository(models.DB)
	c.LoginLogRepo = repository.NewLoginLogRepository(models.DB)
	c.AuthzAuditRepo = repository.NewAuthzAuditLogRepository(models.DB)
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

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.QueueClient)
	c.UserService = service.NewUserService(c.UserRepo, c.InvoiceRepo)
	c.LoginLogService = service.NewLoginLogService(c.LoginLogRepo, c.UserRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditRepo)

	c.CatalogService = service.NewCatalogService(c.OfferingRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CourseService = service.NewCourseService(c.CourseRepo, c.CategoryRepo, c.InvoiceRepo)
	c.ScheduleService = service.NewScheduleService(c.ScheduleRepo, c.OfferingRepo, c.CourseRepo, c.CartRepo, c.InvoiceRepo)
	c.PaymentMethodService = service.NewPaymentMethodService(c.PaymentMethodRepo, c.InvoiceRepo)

	c.CartService = service.NewCartService(c.CartRepo, c.CatalogService)
	c.SettlementService = service.NewSettlementService(c.CartRepo, c.InvoiceRepo, c.PaymentMethodRepo, c.QueueClient, c.Config.Invoice)
	c.InvoiceService = service.NewInvoiceService(c.InvoiceRepo, c.UserRepo, c.PaymentMethodRepo, c.SettlementService)
}

// Close 释放队列客户端与缓存连接
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if err := c.QueueClient.Close(); err != nil {
		firstErr = err
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		if firstErr == nil {
			firstErr = err
		}
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
	return firstErr
}
