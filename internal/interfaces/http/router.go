package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
	"github.com/tu-usuario/tailor-pro/internal/domain/permission"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store       *store.Store
	Syncer      *store.Syncer
	AuthUC      *usecase.AuthUseCase
	OrderUC     *usecase.OrderUseCase
	CustomerUC  *usecase.CustomerUseCase
	WorkerUC    *usecase.WorkerUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	AccountUC   *usecase.AccountUseCase
	UserUC      *usecase.UserUseCase
	AnalyticsUC *usecase.AnalyticsUseCase
	ExportUC    *usecase.ExportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Cada mutación lleva su permiso; las
// lecturas con scope own/all pasan por RequireAnyView y el filtrado fino lo
// hace la capa de visibilidad.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y cuenta activa)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Store))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/password", authHandler.ChangePassword)

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", RequireAnyView(permission.CategoryOrders), orderHandler.List)
	orders.Post("/", RequirePermission(permission.CreateOrders), orderHandler.Create)
	orders.Post("/receipt", RequirePermission(permission.EditOrders), orderHandler.ApplyReceipt)
	orders.Get("/:id", RequireAnyView(permission.CategoryOrders), orderHandler.GetByID)
	orders.Put("/:id", RequirePermission(permission.EditOrders), orderHandler.Update)
	orders.Delete("/:id", RequirePermission(permission.DeleteOrders), orderHandler.Delete)
	orders.Put("/:id/status", RequirePermission(permission.EditOrders), orderHandler.SetStatus)
	orders.Post("/:id/payments", RequirePermission(permission.EditOrders), orderHandler.AddPayment)
	orders.Put("/:id/assignments", RequirePermission(permission.EditOrders), orderHandler.UpdateAssignments)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", RequireAnyView(permission.CategoryCustomers), customerHandler.List)
	customers.Post("/", RequirePermission(permission.CreateCustomers), customerHandler.Create)
	customers.Get("/:id", RequireAnyView(permission.CategoryCustomers), customerHandler.GetByID)
	customers.Put("/:id", RequirePermission(permission.EditCustomers), customerHandler.Update)
	customers.Put("/:id/profiles", RequirePermission(permission.EditCustomerMeasurements), customerHandler.UpdateProfiles)
	customers.Delete("/:id", RequirePermission(permission.DeleteCustomers), customerHandler.Delete)

	// Workers
	workers := protected.Group("/workers")
	workerHandler := NewWorkerHandler(deps.WorkerUC)
	workers.Get("/", RequirePermission(permission.ViewWorkers), workerHandler.List)
	workers.Post("/", RequirePermission(permission.CreateWorkers), workerHandler.Create)
	workers.Put("/:id", RequirePermission(permission.EditWorkers), workerHandler.Update)
	workers.Delete("/:id", RequirePermission(permission.DeleteWorkers), workerHandler.Delete)
	workers.Post("/:id/payments", RequirePermission(permission.PayWorkers), workerHandler.Pay)
	workers.Get("/:id/ledger", RequirePermission(permission.ViewWorkers), workerHandler.Ledger)

	// Expenses
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Get("/", RequireAnyView(permission.CategoryExpenses), expenseHandler.List)
	expenses.Post("/", RequirePermission(permission.CreateExpenses), expenseHandler.Create)
	expenses.Put("/:id", RequirePermission(permission.EditExpenses), expenseHandler.Update)
	expenses.Delete("/:id", RequirePermission(permission.DeleteExpenses), expenseHandler.Delete)

	// Accounts + settings del negocio
	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Get("/", RequirePermission(permission.ViewAccounts), accountHandler.List)
	accounts.Post("/", RequirePermission(permission.ViewAccounts), accountHandler.Create)
	accounts.Put("/:id", RequirePermission(permission.ViewAccounts), accountHandler.Update)
	accounts.Delete("/:id", RequirePermission(permission.ViewAccounts), accountHandler.Delete)
	protected.Get("/settings", accountHandler.GetSettings)
	protected.Put("/settings", RequirePermission(permission.ManageUsers), accountHandler.UpdateSettings)

	// Users (administración)
	users := protected.Group("/users", RequirePermission(permission.ManageUsers))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/role-defaults", userHandler.RoleDefaults)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Reports + sync
	reportHandler := NewReportHandler(deps.AnalyticsUC, deps.Syncer)
	protected.Get("/dashboard", RequirePermission(permission.ViewDashboard), reportHandler.Dashboard)
	protected.Get("/sync/status", reportHandler.SyncStatus)
	protected.Post("/sync/flush", reportHandler.Flush)

	// Exportes
	exports := protected.Group("/export")
	exportHandler := NewExportHandler(deps.ExportUC)
	exports.Get("/orders.csv", RequireAnyView(permission.CategoryOrders), exportHandler.OrdersCSV)
	exports.Get("/customers.csv", RequireAnyView(permission.CategoryCustomers), exportHandler.CustomersCSV)
	exports.Get("/expenses.csv", RequirePermission(permission.ViewAllExpenses), exportHandler.ExpensesCSV)
	exports.Get("/report.csv", RequireAnyView(permission.CategoryReports), exportHandler.ReportCSV)
	exports.Get("/orders/:id/receipt.pdf", RequireAnyView(permission.CategoryOrders), exportHandler.OrderReceiptPDF)
}
