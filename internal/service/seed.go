package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/primemotors/inventory-service/internal/auth"
	"github.com/primemotors/inventory-service/internal/domain"
	"github.com/primemotors/inventory-service/internal/repository"
)

// SeedAdmin creates an NSM account on first boot if no users exist and a bootstrap
// password is configured. It reports whether an account was created.
func SeedAdmin(ctx context.Context, users repository.UserRepository, username, password string, bcryptCost int, logger *zap.Logger) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, nil
	}

	count, err := users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("checking user count: %w", err)
	}
	if count > 0 {
		logger.Info("users exist, skipping admin seed")
		return false, nil
	}

	hash, err := auth.HashPassword(password, bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hashing seed password: %w", err)
	}

	admin := &domain.User{
		Username:     username,
		Name:         "National Sales Manager",
		PasswordHash: hash,
		Role:         domain.RoleNSM,
	}
	if err := users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("creating seed admin: %w", err)
	}

	logger.Warn("seed admin account created",
		zap.String("username", username),
		zap.String("action_required", "change this password"))
	return true, nil
}
