package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-api/internal/application/analytics"
	"github.com/jhoicas/marketplace-api/internal/application/auth"
	"github.com/jhoicas/marketplace-api/internal/application/payment"
	"github.com/jhoicas/marketplace-api/internal/application/usecase"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	SupplierUC  *usecase.SupplierUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	OrderUC     *usecase.OrderUseCase
	PaymentUC   *payment.UseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
//
// Tres superficies: pública (auth + catálogo), protegida (Bearer token) y
// admin (Bearer + rol admin). La autorización fina por proveedor ocurre en los
// casos de uso; aquí solo se decide 401 vs pasar.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo (público, sin token)
	catalog := api.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.ProductUC, deps.CategoryUC)
	catalog.Get("/products", catalogHandler.ListProducts)
	catalog.Get("/products/:id", catalogHandler.GetProduct)
	catalog.Get("/categories", catalogHandler.CategoryTree)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Register)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Post("/:id/managers", supplierHandler.AddManager)
	suppliers.Get("/:id/managers", supplierHandler.ListManagers)
	suppliers.Delete("/:id/managers/:user_id", supplierHandler.RemoveManager)

	// Products (protegido)
	productHandler := NewProductHandler(deps.ProductUC)
	suppliers.Post("/:id/products", productHandler.Create)
	suppliers.Get("/:id/products", productHandler.ListBySupplier)
	products := protected.Group("/products")
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Place)
	orders.Get("/", orderHandler.ListMine)
	orders.Get("/:id", orderHandler.GetByID)
	suppliers.Get("/:id/orders", orderHandler.ListBySupplier)

	// Payments y settlements (protegido)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	protected.Post("/payments/charge", paymentHandler.Charge)
	protected.Get("/settlements/:id", paymentHandler.GetSettlement)
	protected.Get("/settlements/:id/receipt", paymentHandler.Receipt)
	suppliers.Get("/:id/settlements", paymentHandler.ListSettlements)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	suppliers.Get("/:id/dashboard", dashboardHandler.Summary)

	// Admin (Bearer + rol admin)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	admin.Get("/suppliers", supplierHandler.List)
	admin.Put("/suppliers/:id/status/:status", supplierHandler.ChangeStatus)
	admin.Delete("/suppliers/:id", supplierHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	admin.Post("/categories", categoryHandler.Create)
	admin.Get("/categories", categoryHandler.List)
	admin.Get("/categories/:id", categoryHandler.GetByID)
	admin.Put("/categories/:id", categoryHandler.Update)
	admin.Delete("/categories/:id", categoryHandler.Delete)
}
