package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/minegocio/avemaria-api/internal/application/analytics"
	"github.com/minegocio/avemaria-api/internal/application/auth"
	"github.com/minegocio/avemaria-api/internal/application/ledger"
	"github.com/minegocio/avemaria-api/internal/application/usecase"
	infrapdf "github.com/minegocio/avemaria-api/internal/infrastructure/pdf"
	"github.com/minegocio/avemaria-api/internal/infrastructure/postgres"
	httpRouter "github.com/minegocio/avemaria-api/internal/interfaces/http"
	"github.com/minegocio/avemaria-api/pkg/config"
	"github.com/minegocio/avemaria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	refreshRepo := postgres.NewRefreshTokenRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Limpieza de sesiones vencidas al arrancar
	if err := refreshRepo.DeleteExpired(); err != nil {
		log.Warn().Err(err).Msg("limpieza de refresh tokens vencidos")
	}

	productUC := usecase.NewProductUseCase(productRepo)
	purchaseUC := ledger.NewPurchaseUseCase(txRunner, productRepo, purchaseRepo, analyticsRepo)
	saleUC := ledger.NewSaleUseCase(txRunner, productRepo, saleRepo, customerRepo, transactionRepo, analyticsRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, saleRepo)
	accountingUC := usecase.NewAccountingUseCase(transactionRepo, analyticsRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, productRepo)

	// PDF: comprobante de venta para compartir por WhatsApp
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := ledger.NewReceiptUseCase(saleRepo, userRepo, customerRepo, productRepo, receiptGenerator)

	authUC := auth.NewUseCase(userRepo, refreshRepo, auth.Config{
		JWTSecret:      cfg.JWT.Secret,
		JWTExpMinutes:  cfg.JWT.Expiration,
		RefreshExpDays: cfg.JWT.RefreshExpDays,
		Issuer:         cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mi Negocio AVEMARÍA API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		PurchaseUC:   purchaseUC,
		SaleUC:       saleUC,
		ReceiptUC:    receiptUC,
		CustomerUC:   customerUC,
		AccountingUC: accountingUC,
		DashboardUC:  dashboardUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
		Env:          cfg.App.Env,
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
