package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/events"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	ProductUC         *usecase.ProductUseCase
	CategoryUC        *usecase.CategoryUseCase
	SupplierUC        *usecase.SupplierUseCase
	UserUC            *usecase.UserUseCase
	StockUC           *inventory.StockMutationUseCase
	LedgerUC          *ledger.LedgerUseCase
	ReceiptUC         *ledger.ReceiptUseCase
	DashboardUC       *appanalytics.DashboardUseCase
	Hub               *events.Hub // opcional: sin hub no se expone /ws/ledger
	JWTSecret         string
	LowStockThreshold int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Transactions
	txs := protected.Group("/transactions")
	txHandler := NewTransactionHandler(deps.StockUC, deps.LedgerUC, deps.ReceiptUC)
	txs.Post("/purchase", txHandler.Purchase)
	txs.Post("/sell", txHandler.Sell)
	txs.Post("/return", txHandler.Return)
	txs.Get("/", txHandler.List)
	txs.Get("/type/:type", txHandler.ListByType)
	txs.Get("/product/:productId", txHandler.ListByProduct)
	txs.Get("/:id", txHandler.GetByID)
	txs.Get("/:id/receipt", txHandler.DownloadReceipt)
	txs.Put("/:id/status", adminOnly, txHandler.UpdateStatus)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC, deps.LowStockThreshold)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/category/:categoryId", productHandler.ListByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Put("/:id/stock", adminOnly, productHandler.AdjustStock)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/all", categoryHandler.ListAll)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/all", supplierHandler.ListAll)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Users (/profile antes de /:id)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/profile", userHandler.Profile)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", adminOnly, userHandler.GetByID)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/overview", dashboardHandler.Overview)
	dashboard.Get("/alerts", dashboardHandler.Alerts)
	dashboard.Get("/top-products", dashboardHandler.TopProducts)

	// Eventos del libro mayor en vivo
	if deps.Hub != nil {
		app.Use("/ws", wsUpgradeRequired)
		app.Get("/ws/ledger", ledgerFeed(deps.Hub))
	}
}
