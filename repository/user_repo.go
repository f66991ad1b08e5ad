package repository

import (
	"context"

	"feedbackportal/models"
)

// UserRepository defines the interface for user operations.
// Single-row lookups return (nil, nil) when nothing matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}
