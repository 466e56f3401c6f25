package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Technomind786/order-management/internal/models"
)

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Store) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Store) DeleteUser(id uint) error {
	return s.DB.Delete(&models.User{}, id).Error
}

// UsernameTaken reports whether another user already holds the given
// username. excludeID lets an edit keep its own name.
func (s *Store) UsernameTaken(username string, excludeID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
