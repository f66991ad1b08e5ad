// Package seed loads demo accounts and feedback into an empty store.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"feedbackportal/auth"
	"feedbackportal/models"
	"feedbackportal/repository"

	log "github.com/sirupsen/logrus"
)

const (
	FeedbackCount = 10
	ResponseCount = 5
)

var titles = []string{
	"Login issue", "Great feature", "Slow loading", "Color scheme", "Bug in report",
	"Suggestion for UI", "API error", "Export data", "Mobile view broken", "Thanks for help",
}

var descriptions = []string{
	"I cannot login with my account.", "Love the new dashboard!", "Page takes 5s to load.",
	"Can we have dark mode?", "Report shows wrong numbers.", "Move button to left.",
	"500 error on /api/v1", "Need CSV export.", "Menu overlaps on phone.", "Support was very fast.",
}

type Seeder struct {
	Users    repository.UserRepository
	Feedback repository.FeedbackRepository
	Password string
	Rand     *rand.Rand
	Now      func() time.Time
}

// Run populates the store on first boot. It does nothing when any user
// already exists and reports whether it seeded.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	n, err := s.Users.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		log.Debug("store already populated, skipping seed")
		return false, nil
	}

	rng := s.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	hash, err := auth.HashPassword(s.Password)
	if err != nil {
		return false, err
	}

	accounts := make(map[models.Role]*models.User, len(models.Roles))
	for _, role := range models.Roles {
		u := &models.User{Username: string(role), PasswordHash: hash, Role: role}
		if err := s.Users.CreateUser(ctx, u); err != nil {
			return false, fmt.Errorf("create %s user: %w", role, err)
		}
		accounts[role] = u
	}

	items := make([]*models.Feedback, 0, FeedbackCount)
	for i := 0; i < FeedbackCount; i++ {
		createdAt := now().UTC().AddDate(0, 0, -rng.Intn(31))
		fb := &models.Feedback{
			Title:       titles[i],
			Description: descriptions[i],
			Category:    models.Categories[rng.Intn(len(models.Categories))],
			Priority:    models.Priorities[rng.Intn(len(models.Priorities))],
			Status:      models.Statuses[rng.Intn(len(models.Statuses))],
			CreatedAt:   createdAt,
			UserID:      accounts[models.RoleCustomer].ID,
		}
		if fb.Status == models.StatusClosed {
			closedAt := createdAt.Add(time.Duration(1+rng.Intn(72)) * time.Hour)
			fb.ClosedAt = &closedAt
		}
		if err := s.Feedback.CreateFeedback(ctx, fb); err != nil {
			return false, fmt.Errorf("create feedback %q: %w", fb.Title, err)
		}
		items = append(items, fb)
	}

	support := accounts[models.RoleSupport]
	for i := 0; i < ResponseCount; i++ {
		fb := items[rng.Intn(len(items))]
		resp := &models.Response{
			Content:    fmt.Sprintf("We are looking into this. (Response %d)", i+1),
			CreatedAt:  now().UTC(),
			FeedbackID: fb.ID,
			UserID:     support.ID,
		}
		if err := s.Feedback.AddResponse(ctx, resp); err != nil {
			return false, fmt.Errorf("create response: %w", err)
		}
		if fb.Status == models.StatusNew {
			if err := s.Feedback.UpdateStatus(ctx, fb.ID, models.StatusInReview, now()); err != nil {
				return false, fmt.Errorf("mark feedback %d in review: %w", fb.ID, err)
			}
			fb.Status = models.StatusInReview
		}
	}

	log.WithFields(log.Fields{
		"users":     len(accounts),
		"feedback":  len(items),
		"responses": ResponseCount,
	}).Info("seeded demo data")
	return true, nil
}
