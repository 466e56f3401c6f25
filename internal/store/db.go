package store

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Technomind786/order-management/internal/models"
)

type Store struct {
	DB *gorm.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Store{DB: db}, nil
}

// Migrate creates or updates the three tables.
func (s *Store) Migrate() error {
	return s.DB.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
	)
}
