package repository

import (
	"context"
	"errors"

	"feedbackportal/models"

	"gorm.io/gorm"
)

type GormUserRepo struct {
	DB *gorm.DB
}

func NewGormUserRepo(db *gorm.DB) *GormUserRepo {
	return &GormUserRepo{DB: db}
}

func (r *GormUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrUsernameTaken
		}
		return tx.Create(user).Error
	})
}

func (r *GormUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *GormUserRepo) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func (r *GormUserRepo) first(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.DB.WithContext(ctx).Where(query, arg).First(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
