package repository

import (
	"context"
	"time"

	"feedbackportal/models"

	"github.com/shopspring/decimal"
)

// DashboardRepository computes admin metrics on top of a FeedbackRepository.
// Counts are pushed down to the store; only closed items are scanned to
// average their resolution time.
type DashboardRepository struct {
	FeedbackRepo FeedbackRepository
}

func NewDashboardRepository(feedbackRepo FeedbackRepository) *DashboardRepository {
	return &DashboardRepository{FeedbackRepo: feedbackRepo}
}

func (r *DashboardRepository) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	total, err := r.FeedbackRepo.CountFeedback(ctx, FeedbackFilter{})
	if err != nil {
		return nil, err
	}

	open, err := r.FeedbackRepo.CountFeedback(ctx, FeedbackFilter{
		Statuses: []models.Status{models.StatusNew, models.StatusInReview},
	})
	if err != nil {
		return nil, err
	}

	closed, err := r.FeedbackRepo.ListFeedback(ctx, FeedbackFilter{
		Statuses: []models.Status{models.StatusClosed},
	})
	if err != nil {
		return nil, err
	}

	breakdown := make(map[models.Category]int64, len(models.Categories))
	for _, c := range models.Categories {
		n, err := r.FeedbackRepo.CountFeedback(ctx, FeedbackFilter{Category: c})
		if err != nil {
			return nil, err
		}
		breakdown[c] = n
	}

	return &models.DashboardSummary{
		TotalFeedback:      total,
		OpenItems:          open,
		AvgResolutionHours: AverageResolutionHours(closed),
		CategoryBreakdown:  breakdown,
	}, nil
}

// AverageResolutionHours is the mean of closed_at - created_at, in hours
// rounded half-up to one decimal, over closed items that carry both
// timestamps. It returns 0 when no item qualifies.
func AverageResolutionHours(items []*models.Feedback) float64 {
	total := decimal.Zero
	count := int64(0)
	for _, fb := range items {
		d, ok := fb.ResolutionTime()
		if !ok {
			continue
		}
		total = total.Add(decimal.NewFromInt(d.Nanoseconds()))
		count++
	}
	if count == 0 {
		return 0
	}

	perHour := decimal.NewFromInt(int64(time.Hour))
	avg := total.Div(decimal.NewFromInt(count)).Div(perHour).Round(1)
	return avg.InexactFloat64()
}
