package store

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/Technomind786/order-management/internal/models"
)

// SeedConfig carries the account set created on first boot.
type SeedConfig struct {
	AdminUsername   string
	AdminPassword   string
	DefaultPassword string // shared by the seeded sales/production accounts
}

// SeedDefaultUsers creates the fixed first-boot account set: one admin,
// production1..3 and sales1..10. Existing usernames are left untouched,
// so the seed is safe to run on every startup.
func (s *Store) SeedDefaultUsers(cfg SeedConfig) error {
	defaultHash, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	seed := []models.User{
		{Username: cfg.AdminUsername, Password: string(adminHash), Role: models.RoleAdmin},
	}
	for i := 1; i <= 3; i++ {
		seed = append(seed, models.User{
			Username: fmt.Sprintf("production%d", i),
			Password: string(defaultHash),
			Role:     models.RoleProduction,
		})
	}
	for i := 1; i <= 10; i++ {
		seed = append(seed, models.User{
			Username: fmt.Sprintf("sales%d", i),
			Password: string(defaultHash),
			Role:     models.RoleSales,
		})
	}

	created := 0
	for _, u := range seed {
		existing, err := s.GetUserByUsername(u.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.CreateUser(&u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
		created++
	}
	if created > 0 {
		slog.Info("Seeded default users", "created", created)
	}
	return nil
}
