package handlers

import (
	"net/http"

	"github.com/Technomind786/order-management/internal/models"
)

// NewRouter wires every route with its auth and role guards. The CSRF
// and logging middleware wrap the returned mux in main.
func NewRouter(auth *AuthHandler, orders *OrderHandler, production *ProductionHandler, admin *AdminHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /{$}", auth.LoginForm)
	mux.HandleFunc("POST /{$}", auth.Login)
	mux.HandleFunc("GET /set_language/{lang}", auth.SetLanguage)
	mux.HandleFunc("GET /logout", auth.Logout)

	// Any authenticated role
	mux.HandleFunc("GET /sales", auth.RequireAuth(orders.SalesDashboard))
	mux.HandleFunc("GET /create_order", auth.RequireAuth(orders.CreateOrderForm))
	mux.HandleFunc("POST /create_order", auth.RequireAuth(orders.CreateOrder))
	mux.HandleFunc("GET /edit_order/{id}", auth.RequireAuth(orders.EditOrderForm))
	mux.HandleFunc("POST /edit_order/{id}", auth.RequireAuth(orders.UpdateOrder))
	mux.HandleFunc("GET /production", auth.RequireAuth(production.Dashboard))

	// Production only
	mux.HandleFunc("GET /complete_order/{id}", auth.RequireRole(models.RoleProduction, production.CompleteOrder))
	mux.HandleFunc("GET /revoke_order/{id}", auth.RequireRole(models.RoleProduction, production.RevokeOrder))
	mux.HandleFunc("GET /export_orders", auth.RequireRole(models.RoleProduction, production.ExportOrders))

	// Admin only
	mux.HandleFunc("GET /admin", auth.RequireRole(models.RoleAdmin, admin.Dashboard))
	mux.HandleFunc("POST /admin", auth.RequireRole(models.RoleAdmin, admin.CreateUser))
	mux.HandleFunc("GET /edit_user/{id}", auth.RequireRole(models.RoleAdmin, admin.EditUserForm))
	mux.HandleFunc("POST /edit_user/{id}", auth.RequireRole(models.RoleAdmin, admin.UpdateUser))
	mux.HandleFunc("GET /delete_user/{id}", auth.RequireRole(models.RoleAdmin, admin.DeleteUser))

	return mux
}
