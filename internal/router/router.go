package router

import (
	"log"
	"time"

	"djibtrade/config"
	"djibtrade/internal/cache"
	"djibtrade/internal/domain"
	"djibtrade/internal/handler"
	"djibtrade/internal/middleware"
	"djibtrade/internal/repository"
	"djibtrade/internal/service"
	"djibtrade/internal/ws"
	"djibtrade/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, blacklist *cache.TokenBlacklist) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	notifyHub := ws.NewHub()

	// Services and event subscribers. The bus mirrors the domain events:
	// product.created drives the notification fan-out, user.created seeds
	// preferences and sends the welcome email.
	bus := service.NewBus()
	authSvc := service.NewAuthService(cfg, userRepo, bus)
	productSvc := service.NewProductService(productRepo, userRepo, categoryRepo, bus)
	notifSvc := service.NewNotificationService(notificationRepo, preferenceRepo, userRepo, notifyHub)
	mailSvc := service.NewMailService(&cfg.SMTP, cfg.Server.FrontendURL)

	if err := bus.Subscribe(service.TopicProductCreated, notifSvc.HandleProductCreated); err != nil {
		log.Fatalf("bus subscribe: %v", err)
	}
	if err := bus.Subscribe(service.TopicUserCreated, notifSvc.HandleUserCreated); err != nil {
		log.Fatalf("bus subscribe: %v", err)
	}
	if mailSvc != nil {
		if err := bus.SubscribeAsync(service.TopicUserCreated, mailSvc.HandleUserCreated, false); err != nil {
			log.Fatalf("bus subscribe: %v", err)
		}
	} else {
		log.Printf("[mail] disabled: set EMAIL_HOST to enable welcome emails")
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, blacklist)
	userHandler := handler.NewUserHandler(userRepo, cloud)
	productHandler := handler.NewProductHandler(productSvc, cloud)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionRepo, userRepo)

	authMw := middleware.AuthRequired(&cfg.JWT, blacklist)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
		}

		// Listings: read open, mutation authenticated (+ ownership/role
		// checks in the service).
		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)
		api.POST("/products", authMw, productHandler.Create)
		api.PATCH("/products/:id", authMw, productHandler.Update)
		api.DELETE("/products/:id", authMw, productHandler.Delete)

		api.GET("/categories", categoryHandler.List)
		api.POST("/categories", authMw, middleware.RequireRole(domain.RoleAdmin), categoryHandler.Create)
		api.DELETE("/categories/:id", authMw, middleware.RequireRole(domain.RoleAdmin), categoryHandler.Delete)

		me := api.Group("", authMw)
		{
			me.GET("/profile", userHandler.GetProfile)
			me.PATCH("/profile", userHandler.UpdateProfile)
			me.POST("/profile/logo", userHandler.UploadLogo)
			me.GET("/subscription", subscriptionHandler.GetMine)

			me.GET("/notifications", notificationHandler.List)
			me.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			me.POST("/notifications/mark-all-read", notificationHandler.MarkAllRead)
			me.GET("/notification-preferences", notificationHandler.GetPreferences)
			me.PUT("/notification-preferences", notificationHandler.UpdatePreferences)
		}

		admin := api.Group("/users", authMw)
		{
			admin.GET("", middleware.RequireRole(domain.RoleAdmin, domain.RoleModerator), userHandler.List)
			admin.GET("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleModerator), userHandler.Get)
			admin.PATCH("/:id", middleware.RequireRole(domain.RoleAdmin), userHandler.AdminUpdate)
			admin.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userHandler.Delete)
			admin.PUT("/:id/subscription", middleware.RequireRole(domain.RoleAdmin), subscriptionHandler.SetPlan)
		}
	}

	r.GET("/ws/notifications", ws.NotificationStream(&cfg.JWT, notifyHub))

	return r
}
