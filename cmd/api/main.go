package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/marketplace-api/internal/application/analytics"
	"github.com/jhoicas/marketplace-api/internal/application/auth"
	"github.com/jhoicas/marketplace-api/internal/application/payment"
	"github.com/jhoicas/marketplace-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/marketplace-api/internal/infrastructure/pdf"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/postgres"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/rediscache"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/stripegw"
	httpRouter "github.com/jhoicas/marketplace-api/internal/interfaces/http"
	"github.com/jhoicas/marketplace-api/pkg/config"
	"github.com/jhoicas/marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de catálogo: opcional, sin REDIS_ADDR los casos de uso van directo a DB.
	var catalogCache usecase.CatalogCache
	if cfg.Redis.Addr != "" {
		cache, err := rediscache.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer cache.Close()
		catalogCache = cache
	}

	userRepo := postgres.NewUserRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	managerRepo := postgres.NewSupplierManagerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	settlementRepo := postgres.NewSettlementRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:   cfg.JWT.Secret,
		ExpHours: cfg.JWT.ExpHours,
		Issuer:   cfg.JWT.Issuer,
	})
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, managerRepo, userRepo, orderRepo)
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo, managerRepo, categoryRepo, catalogCache)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo, catalogCache)
	orderUC := usecase.NewOrderUseCase(productRepo, orderRepo, supplierRepo, managerRepo, txRunner)

	gateway := stripegw.New(cfg.Stripe, log.Component("stripe"))
	receiptGen := infrapdf.NewMarotoReceiptGenerator()
	paymentUC := payment.NewUseCase(
		supplierRepo, managerRepo, orderRepo, settlementRepo,
		gateway, txRunner, receiptGen, log.Component("payments"),
	)
	dashboardUC := analytics.NewDashboardUseCase(supplierRepo, managerRepo, dashboardRepo, analytics.Options{
		LowStockThreshold: cfg.Dashboard.LowStockThreshold,
		TopProducts:       cfg.Dashboard.TopProducts,
		IncomeMonths:      cfg.Dashboard.IncomeMonths,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vendora API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SupplierUC:  supplierUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		OrderUC:     orderUC,
		PaymentUC:   paymentUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
