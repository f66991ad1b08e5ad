package repository

import (
	"context"
	"testing"
	"time"

	"feedbackportal/db/sqlite"
	"feedbackportal/models"
)

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// setupTestDB opens a fresh in-memory SQLite store with the schema applied.
func setupTestDB(t *testing.T) (*GormUserRepo, *GormFeedbackRepo) {
	t.Helper()
	ctx := context.Background()
	store := sqlite.NewSQLiteDB(sqlite.MemoryPath)
	if err := store.Connect(ctx); err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = store.Disconnect(ctx) })
	return NewGormUserRepo(store.Conn), NewGormFeedbackRepo(store.Conn)
}

func mustCreateUser(t *testing.T, repo UserRepository, username string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "$2a$10$placeholder", Role: role}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func mustCreateFeedback(t *testing.T, repo FeedbackRepository, owner *models.User, title string, c models.Category, s models.Status, createdAt time.Time) *models.Feedback {
	t.Helper()
	fb := &models.Feedback{
		Title:     title,
		Category:  c,
		Priority:  models.PriorityMedium,
		Status:    s,
		CreatedAt: createdAt,
		UserID:    owner.ID,
	}
	if err := repo.CreateFeedback(context.Background(), fb); err != nil {
		t.Fatalf("create feedback %s: %v", title, err)
	}
	return fb
}

func titles(list []*models.Feedback) []string {
	out := make([]string, len(list))
	for i, fb := range list {
		out[i] = fb.Title
	}
	return out
}
