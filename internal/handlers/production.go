package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/sessions"
	"github.com/xuri/excelize/v2"

	"github.com/Technomind786/order-management/internal/models"
	"github.com/Technomind786/order-management/internal/store"
)

type ProductionHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

func (h *ProductionHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	if _, err := h.Store.PurgeExpiredCompleted(now); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	search := r.URL.Query().Get("search")
	filter := r.URL.Query().Get("filter")

	orders, err := h.Store.ProductionOrders(search, filter, now)
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	views, err := buildViews(h.Store, orders, now)
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	// KPIs always cover the full order set, not the filtered view.
	stats, err := h.Store.GetDashboardStats(now)
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("production_dashboard.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	identity, _ := CurrentIdentity(r)
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Orders":   views,
		"Stats":    stats,
		"Search":   search,
		"Filter":   filter,
		"Identity": identity,
		"Lang":     identity.Lang,
		"Flashes":  GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ProductionHandler) getOrder(w http.ResponseWriter, r *http.Request) *models.Order {
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
	return order
}

func (h *ProductionHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	order := h.getOrder(w, r)
	if order == nil {
		return
	}

	// Already completed: no-op, back to the dashboard.
	if order.Status == models.StatusCompleted {
		http.Redirect(w, r, "/production", http.StatusSeeOther)
		return
	}

	identity, _ := CurrentIdentity(r)
	if err := h.Store.CompleteOrder(order.ID, identity.Username, time.Now().UTC()); err != nil {
		http.Error(w, "Error updating order", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	flashRedirect(w, r, session, FlashMessage{Type: "success", Message: "Order " + order.OrderNumber + " completed."}, "/production")
}

func (h *ProductionHandler) RevokeOrder(w http.ResponseWriter, r *http.Request) {
	order := h.getOrder(w, r)
	if order == nil {
		return
	}

	if err := h.Store.RevokeOrder(order.ID); err != nil {
		http.Error(w, "Error updating order", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	flashRedirect(w, r, session, FlashMessage{Type: "success", Message: "Order " + order.OrderNumber + " set back to pending."}, "/production")
}

// ExportOrders streams the full order book as orders_report.xlsx, one
// row per order, unfiltered.
func (h *ProductionHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.ListOrders()
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"Order Number", "Customer", "Dispatch Date", "Sales Person", "Status", "Completed By", "Completed Time"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		http.Error(w, "Error building report", http.StatusInternalServerError)
		return
	}

	for i, order := range orders {
		completedTime := ""
		if order.CompletedTime != nil {
			completedTime = order.CompletedTime.Format("2006-01-02 15:04:05")
		}
		row := []interface{}{
			order.OrderNumber,
			order.CustomerName,
			order.DispatchDate.Format(dateLayout),
			order.SalesPerson,
			order.Status,
			order.CompletedBy,
			completedTime,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			http.Error(w, "Error building report", http.StatusInternalServerError)
			return
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			http.Error(w, "Error building report", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "orders_report.xlsx"))
	if err := f.Write(w); err != nil {
		// Headers are already out, so the response cannot be rewritten.
		slog.Error("Failed to write export", "error", err)
	}
}
