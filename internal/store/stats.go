package store

import (
	"time"

	"github.com/Technomind786/order-management/internal/models"
)

// DashboardStats are the production dashboard KPIs, always computed
// over the full order set regardless of the active filter.
type DashboardStats struct {
	TotalOrders     int64
	CompletedOrders int64
	PendingOrders   int64
	UrgentOrders    int64
}

func (s *Store) GetDashboardStats(today time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.DB.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	err := s.DB.Model(&models.Order{}).
		Where("status = ?", models.StatusCompleted).
		Count(&stats.CompletedOrders).Error
	if err != nil {
		return nil, err
	}
	err = s.DB.Model(&models.Order{}).
		Where("status <> ?", models.StatusCompleted).
		Count(&stats.PendingOrders).Error
	if err != nil {
		return nil, err
	}
	err = s.DB.Model(&models.Order{}).
		Where("dispatch_date <= ?", urgentCutoff(today)).
		Count(&stats.UrgentOrders).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
