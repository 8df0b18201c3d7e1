package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlanguage-api/internal/authz"
	"github.com/dlanguage-api/internal/cache"
	"github.com/dlanguage-api/internal/config"
	adminhandlers "github.com/dlanguage-api/internal/http/handlers/admin"
	publichandlers "github.com/dlanguage-api/internal/http/handlers/public"
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/logger"
	"github.com/dlanguage-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	if err := handlershared.RegisterValidators(); err != nil {
		logger.Warnw("router_register_validators_failed", "error", err)
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "dla"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	mailRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:mail", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 目录（公开）
		apiV1.GET("/categories", publicHandler.GetCategories)
		apiV1.GET("/categories/:id", publicHandler.GetCategory)
		apiV1.GET("/courses", publicHandler.GetCourses)
		apiV1.GET("/courses/:id", publicHandler.GetCourse)
		apiV1.GET("/courses/:id/offerings", publicHandler.GetCourseOfferings)
		apiV1.GET("/schedules", publicHandler.GetSchedules)
		apiV1.GET("/payment-methods", publicHandler.GetPaymentMethods)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.GET("/verify-email", publicHandler.VerifyEmail)
			auth.GET("/verification-status", publicHandler.GetVerificationStatus)
			auth.POST("/resend-verification", RateLimitMiddleware(redisClient, mailRule, KeyByIPAndJSONField("email")), publicHandler.ResendVerification)
			auth.POST("/forgot-password", RateLimitMiddleware(redisClient, mailRule, KeyByIPAndJSONField("email")), publicHandler.UserForgotPassword)
			auth.POST("/reset-password", publicHandler.UserResetPassword)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.GET("/me/login-logs", publicHandler.GetMyLoginLogs)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart", publicHandler.AddCartLine)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.DELETE("/cart/:id", publicHandler.RemoveCartLine)
			user.POST("/checkout/settle", publicHandler.Settle)
			user.GET("/invoices", publicHandler.ListInvoices)
			user.GET("/invoices/:id", publicHandler.GetInvoice)
		}

		// 管理员接口：同一用户令牌 + 角色 RBAC
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo), AdminRBACMiddleware(c.AuthzService, c.Identity))
		{
			// 分类管理
			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.GET("/categories/:id", adminHandler.GetAdminCategory)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			// 课程管理
			admin.GET("/courses", adminHandler.GetAdminCourses)
			admin.GET("/courses/:id", adminHandler.GetAdminCourse)
			admin.POST("/courses", adminHandler.CreateCourse)
			admin.PUT("/courses/:id", adminHandler.UpdateCourse)
			admin.DELETE("/courses/:id", adminHandler.DeleteCourse)

			// 排期与开课
			admin.GET("/schedules", adminHandler.GetAdminSchedules)
			admin.GET("/schedules/:id", adminHandler.GetAdminSchedule)
			admin.POST("/schedules", adminHandler.CreateSchedule)
			admin.PUT("/schedules/:id", adminHandler.UpdateSchedule)
			admin.DELETE("/schedules/:id", adminHandler.DeleteSchedule)
			admin.GET("/offerings", adminHandler.GetAdminOfferings)
			admin.GET("/offerings/:id", adminHandler.GetAdminOffering)
			admin.POST("/offerings", adminHandler.CreateOffering)
			admin.PUT("/offerings/:id", adminHandler.UpdateOffering)
			admin.DELETE("/offerings/:id", adminHandler.DeleteOffering)

			// 支付方式
			admin.GET("/payment-methods", adminHandler.GetAdminPaymentMethods)
			admin.GET("/payment-methods/:id", adminHandler.GetAdminPaymentMethod)
			admin.POST("/payment-methods", adminHandler.CreatePaymentMethod)
			admin.PUT("/payment-methods/:id", adminHandler.UpdatePaymentMethod)
			admin.DELETE("/payment-methods/:id", adminHandler.DeletePaymentMethod)

			// 发票管理
			admin.GET("/invoices", adminHandler.GetAdminInvoices)
			admin.GET("/invoices/:id", adminHandler.GetAdminInvoice)
			admin.POST("/invoices", adminHandler.CreateAdminInvoice)
			admin.PUT("/invoices/:id", adminHandler.UpdateAdminInvoice)
			admin.DELETE("/invoices/:id", adminHandler.DeleteAdminInvoice)

			// 用户管理
			admin.GET("/users", adminHandler.GetAdminUsers)
			admin.GET("/users/:id", adminHandler.GetAdminUser)
			admin.PUT("/users/:id", adminHandler.UpdateAdminUser)
			admin.GET("/user-login-logs", adminHandler.GetUserLoginLogs)

			// 权限管理
			admin.GET("/authz/me", adminHandler.GetAuthzMe)
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.POST("/authz/roles", adminHandler.CreateAuthzRole)
			admin.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
			admin.GET("/authz/audit-logs", adminHandler.GetAuthzAuditLogs)
			admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r))
			})
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
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
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

// deriveAdminPermissionModule /admin/offerings 归入 schedules 模块
func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	switch segments[1] {
	case "authz":
		return "authz"
	case "offerings":
		return "schedules"
	case "user-login-logs":
		return "users"
	}
	return segments[1]
}
