package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Technomind786/order-management/internal/models"
)

// Production dashboard filter values.
const (
	FilterCompleted = "completed"
	FilterPending   = "pending"
	FilterUrgent    = "urgent"
)

// urgentWindowDays is the dispatch horizon that makes an order urgent.
const urgentWindowDays = 3

// purgeAfter is how long a completed order is kept before it is swept.
const purgeAfter = 3 * 24 * time.Hour

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// urgentCutoff is the latest dispatch date still counted as urgent.
func urgentCutoff(today time.Time) time.Time {
	return startOfDay(today).AddDate(0, 0, urgentWindowDays)
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreateOrder allocates the next order number and inserts the order and
// its items in one transaction. The number is ORD + highest existing
// sequence + 1, zero padded; counting rows instead would reissue a
// live number once the purge has removed an older order. The unique
// index on order_number catches a concurrent allocation of the same
// value, in which case the whole transaction retries against the fresh
// maximum.
func (s *Store) CreateOrder(order *models.Order, items []models.OrderItem) error {
	const maxAttempts = 3

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			var maxSeq int64
			err := tx.Model(&models.Order{}).
				Select("COALESCE(MAX(CAST(SUBSTR(order_number, 4) AS INTEGER)), 0)").
				Scan(&maxSeq).Error
			if err != nil {
				return err
			}
			order.ID = 0
			order.OrderNumber = fmt.Sprintf("ORD%03d", maxSeq+1)

			if err := tx.Create(order).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ID = 0
				items[i].OrderID = order.ID
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil || !isUniqueViolation(err) {
			return err
		}
	}
	return fmt.Errorf("allocate order number: %w", err)
}

func (s *Store) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (s *Store) GetOrderItems(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.DB.Where("order_id = ?", orderID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListOrders returns every order, newest first (the sales dashboard and
// export view).
func (s *Store) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.Order("order_date desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ProductionOrders applies the production dashboard's search and status
// filter, ordered by order date ascending. search matches customer name
// or order number as a substring; filter is one of the Filter constants
// (anything else means no status filter).
func (s *Store) ProductionOrders(search, filter string, today time.Time) ([]models.Order, error) {
	query := s.DB.Model(&models.Order{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("customer_name LIKE ? OR order_number LIKE ?", pattern, pattern)
	}

	switch filter {
	case FilterCompleted:
		query = query.Where("status = ?", models.StatusCompleted)
	case FilterPending:
		query = query.Where("status <> ?", models.StatusCompleted)
	case FilterUrgent:
		query = query.Where("dispatch_date <= ?", urgentCutoff(today))
	}

	var orders []models.Order
	if err := query.Order("order_date asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrder saves the order's editable fields and replaces its entire
// item set (hard delete then reinsert) in one transaction.
func (s *Store) UpdateOrder(order *models.Order, items []models.OrderItem) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CompleteOrder marks the order completed. Callers are expected to have
// checked the current status; completing twice simply rewrites the same
// fields.
func (s *Store) CompleteOrder(id uint, completedBy string, at time.Time) error {
	return s.DB.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         models.StatusCompleted,
		"completed_by":   completedBy,
		"completed_time": at,
	}).Error
}

// RevokeOrder puts a completed order back to Pending and clears the
// completion fields. Revoking an order that is already Pending is a
// no-op rewrite.
func (s *Store) RevokeOrder(id uint) error {
	return s.DB.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         models.StatusPending,
		"completed_by":   "",
		"completed_time": nil,
	}).Error
}

// DeleteOrder removes an order and its items.
func (s *Store) DeleteOrder(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

// PurgeExpiredCompleted deletes every order completed longer than the
// retention window ago, along with its items, and returns how many
// orders were removed. Called from the dashboard handlers.
func (s *Store) PurgeExpiredCompleted(now time.Time) (int64, error) {
	cutoff := now.Add(-purgeAfter)

	var purged int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		err := tx.Model(&models.Order{}).
			Where("status = ? AND completed_time <= ?", models.StatusCompleted, cutoff).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("order_id IN ?", ids).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, ids)
		purged = res.RowsAffected
		return res.Error
	})
	return purged, err
}
