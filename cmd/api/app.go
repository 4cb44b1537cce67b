package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rajgh7/surprisevista/docs"
	"github.com/rajgh7/surprisevista/internal/adapter/api/controller"
	"github.com/rajgh7/surprisevista/internal/adapter/api/route"
	"github.com/rajgh7/surprisevista/internal/adapter/repository"
	"github.com/rajgh7/surprisevista/internal/domain/session"
	"github.com/rajgh7/surprisevista/internal/infrastructure/cache"
	"github.com/rajgh7/surprisevista/internal/infrastructure/database"
	"github.com/rajgh7/surprisevista/pkg/auth"
	"github.com/rajgh7/surprisevista/pkg/dialogue"
	"github.com/rajgh7/surprisevista/pkg/gemini"
	"github.com/rajgh7/surprisevista/pkg/logger"
	"github.com/rajgh7/surprisevista/pkg/notifier"
	"github.com/rajgh7/surprisevista/pkg/whatsapp"
)

// App holds the application and its wired dependencies
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger
}

// NewApp wires the whole service: storage, the dialogue engine and its
// collaborators, both channel adapters and the REST surface.
func NewApp() (*App, error) {
	log := logger.NewLogger()

	db, err := database.NewPostgresPool()
	if err != nil {
		return nil, err
	}

	// Session state lives in Redis when configured; the in-memory store
	// keeps single-instance deployments working without it.
	var sessions session.Store
	redisClient, err := cache.NewRedisClient()
	if err != nil {
		return nil, err
	}
	if redisClient != nil {
		sessions = repository.NewRedisSessionStore(redisClient, 24*time.Hour)
		log.Info("session store: redis")
	} else {
		sessions = repository.NewMemorySessionStore()
		log.Info("session store: in-memory")
	}

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	waCfg := whatsapp.NewConfigFromEnv()
	waClient := whatsapp.NewClient(waCfg)

	var orderNotifier notifier.Notifier
	if waCfg.AdminPhone != "" && waCfg.Token != "" {
		orderNotifier = notifier.NewWhatsAppNotifier(waClient, waCfg.AdminPhone)
	} else {
		orderNotifier = notifier.NewLogNotifier(log)
	}

	completer := gemini.NewClient(gemini.NewConfigFromEnv())

	engine := dialogue.NewEngine(
		sessions,
		repository.NewDialogueCatalog(productRepo),
		repository.NewDialogueOrders(orderRepo),
		completer,
		orderNotifier,
		log,
		dialogue.Config{},
	)

	jwtService, err := auth.NewJWTService()
	if err != nil {
		log.Warn("admin auth disabled", "error", err)
	}

	chatbotController := controller.NewChatbotController(engine, log)
	whatsAppController := controller.NewWhatsAppController(engine, waClient, waCfg, log)
	cartController := controller.NewCartController(sessions, productRepo, log)
	orderController := controller.NewOrderController(orderRepo, orderNotifier, log)
	productController := controller.NewProductController(productRepo, log)

	router := gin.Default()
	router.Use(corsMiddleware())

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.RegisterChatbotRoutes(api, chatbotController)
	route.RegisterWhatsAppRoutes(api, whatsAppController)
	route.RegisterCartRoutes(api, cartController)
	route.RegisterOrderRoutes(api, orderController)
	route.RegisterProductRoutes(api, productController)
	route.RegisterAdminOrderRoutes(api, orderController)
	route.RegisterAdminProductRoutes(api, productController)

	if jwtService != nil {
		authController := controller.NewAuthController(adminRepo, jwtService, log)
		route.RegisterAuthRoutes(api, authController)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &App{
		router: router,
		db:     db,
		logger: log,
	}, nil
}

// Start runs the HTTP server on PORT (default 8080)
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("starting server", "port", port)
	return a.router.Run(":" + port)
}

// Close releases the application resources
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

func corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	return cors.New(cfg)
}
