package repository

import (
	"context"
	"errors"
	"time"

	"feedbackportal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormFeedbackRepo struct {
	DB *gorm.DB
}

func NewGormFeedbackRepo(db *gorm.DB) *GormFeedbackRepo {
	return &GormFeedbackRepo{DB: db}
}

func (r *GormFeedbackRepo) CreateFeedback(ctx context.Context, fb *models.Feedback) error {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	if fb.Status == "" {
		fb.Status = models.StatusNew
	}
	if err := fb.Validate(); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(fb).Error
}

func (r *GormFeedbackRepo) GetFeedback(ctx context.Context, id int64) (*models.Feedback, error) {
	fb := &models.Feedback{}
	err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Responses.User").
		First(fb, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return fb, nil
}

func (r *GormFeedbackRepo) ListFeedback(ctx context.Context, filter FeedbackFilter) ([]*models.Feedback, error) {
	var list []*models.Feedback
	err := r.filtered(ctx, filter).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *GormFeedbackRepo) CountFeedback(ctx context.Context, filter FeedbackFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, filter).Count(&n).Error
	return n, err
}

func (r *GormFeedbackRepo) UpdateStatus(ctx context.Context, id int64, status models.Status, at time.Time) error {
	if !status.Valid() {
		return errors.New("invalid status " + string(status))
	}
	updates := map[string]any{"status": status}
	if closedAt := closedAtFor(status, at); closedAt != nil {
		updates["closed_at"] = *closedAt
	}
	res := r.DB.WithContext(ctx).Model(&models.Feedback{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}

func (r *GormFeedbackRepo) DeleteFeedback(ctx context.Context, id int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("feedback_id = ?", id).Delete(&models.Response{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Feedback{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFeedbackNotFound
		}
		return nil
	})
}

func (r *GormFeedbackRepo) AddResponse(ctx context.Context, resp *models.Response) error {
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now().UTC()
	}
	if err := resp.Validate(); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Feedback{}).Where("id = ?", resp.FeedbackID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrFeedbackNotFound
		}
		return tx.Omit(clause.Associations).Create(resp).Error
	})
}

func (r *GormFeedbackRepo) filtered(ctx context.Context, filter FeedbackFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&models.Feedback{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}
	return q
}
