package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-retail-pos/internal/cache"
	"go-retail-pos/internal/config"
	"go-retail-pos/internal/handler"
	"go-retail-pos/internal/middleware"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	db := database.ConnectDB(cfg)
	db.AutoMigrate(
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.Investor{},
		&model.User{},
	)

	// Dashboard snapshot cache; a missing Redis just means no caching.
	var snapshotCache cache.Cache
	if cfg.RedisAddr != "" {
		snapshotCache, err = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, dashboard caching disabled")
			snapshotCache = cache.NewNoop()
		}
	} else {
		snapshotCache = cache.NewNoop()
	}

	wsHub := ws.NewHub()
	go wsHub.Run()

	// Wiring
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	investorRepo := repository.NewInvestorRepo(db)
	userRepo := repository.NewUserRepo(db)

	ledger := service.NewStockLedger(productRepo)
	salesService := service.NewSalesService(ledger, txRepo, wsHub)
	reportService := service.NewReportService(txRepo, productRepo, snapshotCache)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, supplierRepo, investorRepo)
	authService := service.NewAuthService(userRepo)

	salesHandler := handler.NewSalesHandler(salesService, reportService)
	dashboardHandler := handler.NewDashboardHandler(reportService)
	productHandler := handler.NewProductHandler(catalogService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	authHandler := handler.NewAuthHandler(authService)

	seedAdmin(userRepo, cfg)

	app := fiber.New(fiber.Config{
		AppName: "Retail POS v1.0",
	})
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api")

	// Public
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// Everything below requires a valid bearer token and an active user.
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Get("/dashboard", dashboardHandler.GetDashboard)

	protected.Get("/transactions", salesHandler.GetTransactions)
	protected.Get("/transactions/stats", salesHandler.GetStats)
	protected.Get("/transactions/:id", salesHandler.GetTransaction)
	protected.Post("/transactions", salesHandler.CreateTransaction)
	protected.Post("/transactions/:id/cancel", salesHandler.CancelTransaction)

	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole("admin"), productHandler.DeleteProduct)

	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Post("/categories", catalogHandler.CreateCategory)
	protected.Put("/categories/:id", catalogHandler.UpdateCategory)
	protected.Delete("/categories/:id", middleware.RequireRole("admin"), catalogHandler.DeleteCategory)

	protected.Get("/suppliers", catalogHandler.GetSuppliers)
	protected.Post("/suppliers", catalogHandler.CreateSupplier)
	protected.Put("/suppliers/:id", catalogHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequireRole("admin"), catalogHandler.DeleteSupplier)

	protected.Get("/investors", catalogHandler.GetInvestors)
	protected.Post("/investors", middleware.RequireRole("admin"), catalogHandler.CreateInvestor)
	protected.Put("/investors/:id", middleware.RequireRole("admin"), catalogHandler.UpdateInvestor)
	protected.Delete("/investors/:id", middleware.RequireRole("admin"), catalogHandler.DeleteInvestor)

	// Live stock feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Panic("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}
	log.Info("Server exited")
}

// seedAdmin creates the initial admin account if it does not exist yet.
func seedAdmin(userRepo repository.UserRepository, cfg *config.Config) {
	if _, err := userRepo.FindByEmail(cfg.AdminEmail); err == nil {
		return
	}

	admin := &model.User{
		Email:    cfg.AdminEmail,
		FullName: "Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		log.WithError(err).Warn("Failed to hash admin password")
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.WithError(err).Warn("Failed to create admin user")
		return
	}
	log.WithField("email", cfg.AdminEmail).Info("Admin user created")
}
