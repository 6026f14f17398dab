package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/minegocio/avemaria-api/internal/application/analytics"
	"github.com/minegocio/avemaria-api/internal/application/auth"
	"github.com/minegocio/avemaria-api/internal/application/dto"
	"github.com/minegocio/avemaria-api/internal/application/ledger"
	"github.com/minegocio/avemaria-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	PurchaseUC   *ledger.PurchaseUseCase
	SaleUC       *ledger.SaleUseCase
	ReceiptUC    *ledger.ReceiptUseCase
	CustomerUC   *usecase.CustomerUseCase
	AccountingUC *usecase.AccountingUseCase
	DashboardUC  *analytics.DashboardUseCase
	AuthUC       *auth.UseCase
	JWTSecret    string
	Env          string
}

// authLimiter limita los intentos sobre las rutas de autenticación por IP,
// más estricto que el límite general de la aplicación.
func authLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 15 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiados intentos, vuelve a intentarlo más tarde",
			})
		},
	})
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	exposeInternalErrors = deps.Env == "development"

	api := app.Group("/api")

	// Auth (público, con límite de intentos propio)
	authGroup := api.Group("/auth", authLimiter())
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil (protegido)
	protected.Get("/profile", authHandler.Profile)
	protected.Put("/profile", authHandler.UpdateProfile)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/stats", productHandler.Stats)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)

	// Purchases (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/summary", purchaseHandler.Summary)
	purchases.Get("/:id", purchaseHandler.GetByID)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/summary", saleHandler.Summary)
	sales.Get("/by-product", saleHandler.ByProduct)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Patch("/:id/status", saleHandler.UpdateStatus)
	sales.Post("/:id/cancel", saleHandler.Cancel)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetDetail)
	customers.Put("/:id", customerHandler.Update)

	// Accounting (protegido)
	accounting := protected.Group("/accounting")
	accountingHandler := NewAccountingHandler(deps.AccountingUC)
	accounting.Get("/transactions", accountingHandler.ListTransactions)
	accounting.Post("/expenses", accountingHandler.CreateExpense)
	accounting.Get("/summary", accountingHandler.Summary)
	accounting.Get("/by-month", accountingHandler.ByMonth)
	accounting.Get("/per-hundred", accountingHandler.PerHundred)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)
}
