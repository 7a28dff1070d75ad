package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/tienda-pos/internal/application/analytics"
	"github.com/jhoicas/tienda-pos/internal/application/auth"
	"github.com/jhoicas/tienda-pos/internal/application/cashregister"
	"github.com/jhoicas/tienda-pos/internal/application/sale"
	"github.com/jhoicas/tienda-pos/internal/application/usecase"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	Entry       *sale.EntryService
	Ledger      *sale.LedgerService
	Cash        *cashregister.UseCase
	DashboardUC *appanalytics.DashboardUseCase
	ChartsUC    *appanalytics.ChartsUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Inventario: lectura para todos, escritura solo admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Carga de venta (carrito por usuario)
	entry := protected.Group("/sales/entry")
	entryHandler := NewSaleEntryHandler(deps.Entry)
	entry.Get("/products", entryHandler.Products)
	entry.Get("/cart", entryHandler.Cart)
	entry.Delete("/cart", entryHandler.Discard)
	entry.Post("/cart/items", entryHandler.AddItem)
	entry.Patch("/cart/items/:productId", entryHandler.UpdateItem)
	entry.Delete("/cart/items/:productId", entryHandler.RemoveItem)
	entry.Put("/cart/deduction", entryHandler.SetDeduction)
	entry.Post("/submit", entryHandler.Submit)

	// Historial de ventas. /export va antes de /:id.
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Ledger)
	sales.Get("/", saleHandler.List)
	sales.Get("/export", saleHandler.Export)
	sales.Patch("/:id/status", saleHandler.UpdateStatus)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Caja
	cash := protected.Group("/cash")
	cashHandler := NewCashHandler(deps.Cash)
	cash.Get("/", cashHandler.Summary)
	cash.Post("/expenses", cashHandler.AddExpense)
	cash.Delete("/expenses/:id", adminOnly, cashHandler.DeleteExpense)

	// Inicio y gráficas
	protected.Get("/dashboard/summary", NewDashboardHandler(deps.DashboardUC).GetSummary)
	protected.Get("/charts/sales", NewChartsHandler(deps.ChartsUC).Sales)
}
