package repository

import (
	"context"
	"time"

	"feedbackportal/models"
)

// FeedbackFilter narrows list and count queries. Zero values match everything.
type FeedbackFilter struct {
	Category models.Category
	Statuses []models.Status
}

type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, fb *models.Feedback) error
	// GetFeedback loads one item with its submitter and its responses
	// (oldest first, with authors). Returns (nil, nil) if absent.
	GetFeedback(ctx context.Context, id int64) (*models.Feedback, error)
	// ListFeedback returns matching items with submitters, newest first.
	ListFeedback(ctx context.Context, filter FeedbackFilter) ([]*models.Feedback, error)
	CountFeedback(ctx context.Context, filter FeedbackFilter) (int64, error)
	// UpdateStatus sets the status. closed_at is set to at when the new
	// status is closed and left untouched otherwise.
	UpdateStatus(ctx context.Context, id int64, status models.Status, at time.Time) error
	// DeleteFeedback removes the item and all of its responses.
	DeleteFeedback(ctx context.Context, id int64) error
	// AddResponse fails with ErrFeedbackNotFound if the target is absent.
	AddResponse(ctx context.Context, resp *models.Response) error
}

func closedAtFor(status models.Status, at time.Time) *time.Time {
	if status != models.StatusClosed {
		return nil
	}
	t := at.UTC()
	return &t
}
