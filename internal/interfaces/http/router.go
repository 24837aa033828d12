package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/application/reports"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *usecase.ProductUseCase
	CategoryUC      *usecase.CategoryUseCase
	SupplierUC      *usecase.SupplierUseCase
	UserUC          *usecase.UserUseCase
	DashboardUC     *usecase.DashboardUseCase
	PostTransaction *inventory.PostTransactionUseCase
	InventoryQuery  *inventory.QueryUseCase
	Consistency     *inventory.ConsistencyUseCase
	KardexReport    *reports.KardexUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
//
// RBAC por grupo de operación:
//   - lectura: cualquier usuario autenticado (viewer incluido)
//   - registro de transacciones: admin, manager, staff
//   - mutaciones de catálogo (productos, categorías, proveedores): admin, manager
//   - administración de usuarios: admin
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	canMutateCatalog := RequireRole(entity.RoleAdmin, entity.RoleManager)
	canPostTransactions := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleStaff)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", canMutateCatalog, productHandler.Create)
	products.Put("/:id", canMutateCatalog, productHandler.Update)
	products.Delete("/:id", canMutateCatalog, productHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", canMutateCatalog, categoryHandler.Create)
	categories.Put("/:id", canMutateCatalog, categoryHandler.Update)
	categories.Delete("/:id", canMutateCatalog, categoryHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", canMutateCatalog, supplierHandler.Create)
	suppliers.Put("/:id", canMutateCatalog, supplierHandler.Update)
	suppliers.Delete("/:id", canMutateCatalog, supplierHandler.Delete)

	// Inventory / kardex (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.PostTransaction, deps.InventoryQuery, deps.Consistency)
	invGroup.Post("/transactions", canPostTransactions, inventoryHandler.PostTransaction)
	invGroup.Get("/transactions/recent", inventoryHandler.GetRecent)
	invGroup.Get("/products/:id/transactions", inventoryHandler.GetHistory)
	invGroup.Get("/products/:id/consistency", inventoryHandler.CheckConsistency)
	invGroup.Get("/consistency", inventoryHandler.CheckConsistencyAll)
	invGroup.Get("/low-stock", inventoryHandler.GetLowStock)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.KardexReport)
	reportsGroup.Get("/products/:id/kardex", reportHandler.DownloadKardexPDF)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.AssignRole)
}
