package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/Technomind786/order-management/internal/models"
	"github.com/Technomind786/order-management/internal/store"
)

// dateLayout is the HTML date input wire format.
const dateLayout = "2006-01-02"

type OrderHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// OrderView pairs an order with its derived urgency color and items
// for rendering.
type OrderView struct {
	Order models.Order
	Color string
	Items []models.OrderItem
}

func buildViews(s *store.Store, orders []models.Order, today time.Time) ([]OrderView, error) {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		items, err := s.GetOrderItems(order.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, OrderView{
			Order: order,
			Color: order.UrgencyColor(today),
			Items: items,
		})
	}
	return views, nil
}

func (h *OrderHandler) SalesDashboard(w http.ResponseWriter, r *http.Request) {
	// Lazy sweep of stale completed orders on every dashboard view.
	if _, err := h.Store.PurgeExpiredCompleted(time.Now().UTC()); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	orders, err := h.Store.ListOrders()
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}
	views, err := buildViews(h.Store, orders, time.Now().UTC())
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("sales_dashboard.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	identity, _ := CurrentIdentity(r)
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Orders":   views,
		"Identity": identity,
		"Lang":     identity.Lang,
		"Flashes":  GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *OrderHandler) CreateOrderForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("create_order.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	identity, _ := CurrentIdentity(r)
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Identity":  identity,
		"Lang":      identity.Lang,
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// parseProductRows zips the parallel product_name[]/product_code[]/
// quantity[] form lists into item records, rejecting mismatched list
// lengths and malformed quantities instead of truncating silently.
func parseProductRows(r *http.Request) ([]models.OrderItem, string) {
	names := r.Form["product_name[]"]
	codes := r.Form["product_code[]"]
	quantities := r.Form["quantity[]"]

	if len(names) != len(codes) || len(names) != len(quantities) {
		return nil, "Product rows are incomplete. Every product needs a name, a code and a quantity."
	}

	items := make([]models.OrderItem, 0, len(names))
	for i := range names {
		qty, err := strconv.Atoi(quantities[i])
		if err != nil || qty <= 0 {
			return nil, "Quantity must be a positive whole number."
		}
		items = append(items, models.OrderItem{
			ProductName: names[i],
			ProductCode: codes[i],
			Quantity:    qty,
		})
	}
	return items, ""
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	if err := r.ParseForm(); err != nil {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Invalid form data."}, "/create_order")
		return
	}

	customerName := r.FormValue("customer_name")
	placeOfSupply := r.FormValue("place_of_supply")
	if customerName == "" || placeOfSupply == "" {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Customer name and place of supply are required."}, "/create_order")
		return
	}

	dispatchDate, err := time.Parse(dateLayout, r.FormValue("dispatch_date"))
	if err != nil {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Dispatch date must be a valid date (YYYY-MM-DD)."}, "/create_order")
		return
	}

	items, msg := parseProductRows(r)
	if msg != "" {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: msg}, "/create_order")
		return
	}

	identity, _ := CurrentIdentity(r)
	order := &models.Order{
		CustomerName:  customerName,
		PlaceOfSupply: placeOfSupply,
		OrderDate:     time.Now().UTC(),
		DispatchDate:  dispatchDate,
		SalesPerson:   identity.Username,
		Status:        models.StatusPending,
	}

	if err := h.Store.CreateOrder(order, items); err != nil {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Failed to save order. Please try again."}, "/create_order")
		return
	}

	flashRedirect(w, r, session, FlashMessage{Type: "success", Message: "Order " + order.OrderNumber + " created."}, "/sales")
}

// canEdit applies the ownership rule: sales users may touch only their
// own orders, any other role may touch all of them.
func canEdit(identity Identity, order *models.Order) bool {
	if identity.Role == models.RoleSales {
		return order.SalesPerson == identity.Username
	}
	return true
}

// loadEditableOrder fetches the order for an edit request and enforces
// ownership and lifecycle rules. A nil return means a response has
// already been written.
func (h *OrderHandler) loadEditableOrder(w http.ResponseWriter, r *http.Request) *models.Order {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return nil
	}
	order, err := h.Store.GetOrder(uint(id))
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	if order == nil {
		http.NotFound(w, r)
		return nil
	}

	identity, _ := CurrentIdentity(r)
	if !canEdit(identity, order) {
		http.Error(w, "You can edit only your own orders", http.StatusForbidden)
		return nil
	}
	if order.Status == models.StatusCompleted {
		session, _ := h.SessionStore.Get(r, sessionName)
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Completed orders can no longer be edited."}, "/sales")
		return nil
	}
	return order
}

func (h *OrderHandler) EditOrderForm(w http.ResponseWriter, r *http.Request) {
	order := h.loadEditableOrder(w, r)
	if order == nil {
		return
	}
	items, err := h.Store.GetOrderItems(order.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("edit_order.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	identity, _ := CurrentIdentity(r)
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Order":     order,
		"Items":     items,
		"CsrfField": csrf.TemplateField(r),
		"Identity":  identity,
		"Lang":      identity.Lang,
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	order := h.loadEditableOrder(w, r)
	if order == nil {
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)

	if err := r.ParseForm(); err != nil {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Invalid form data."}, r.URL.Path)
		return
	}

	customerName := r.FormValue("customer_name")
	placeOfSupply := r.FormValue("place_of_supply")
	if customerName == "" || placeOfSupply == "" {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Customer name and place of supply are required."}, r.URL.Path)
		return
	}

	dispatchDate, err := time.Parse(dateLayout, r.FormValue("dispatch_date"))
	if err != nil {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Dispatch date must be a valid date (YYYY-MM-DD)."}, r.URL.Path)
		return
	}

	items, msg := parseProductRows(r)
	if msg != "" {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: msg}, r.URL.Path)
		return
	}

	order.CustomerName = customerName
	order.PlaceOfSupply = placeOfSupply
	order.DispatchDate = dispatchDate
	order.DeliveryTime = r.FormValue("delivery_time")

	if err := h.Store.UpdateOrder(order, items); err != nil {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Failed to update order. Please try again."}, r.URL.Path)
		return
	}

	flashRedirect(w, r, session, FlashMessage{Type: "success", Message: "Order " + order.OrderNumber + " updated."}, "/sales")
}
