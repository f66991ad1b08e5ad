package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"feedbackportal/models"
)

// runRepositoryContract exercises behavior every backend must share.
func runRepositoryContract(t *testing.T, setup func(t *testing.T) (UserRepository, FeedbackRepository)) {
	t.Run("users", func(t *testing.T) {
		users, _ := setup(t)
		ctx := context.Background()

		u := mustCreateUser(t, users, "alice", models.RoleSupport)
		if u.ID == 0 {
			t.Fatal("expected id after create")
		}
		if err := users.CreateUser(ctx, &models.User{Username: "alice", PasswordHash: "x", Role: models.RoleAdmin}); !errors.Is(err, ErrUsernameTaken) {
			t.Errorf("duplicate username: err = %v", err)
		}
		if err := users.CreateUser(ctx, &models.User{Username: "bob", PasswordHash: "x", Role: "root"}); err == nil {
			t.Error("unknown role accepted")
		}

		got, err := users.GetUserByUsername(ctx, "alice")
		if err != nil || got == nil || got.ID != u.ID || got.Role != models.RoleSupport {
			t.Fatalf("GetUserByUsername = %+v, %v", got, err)
		}
		if got, err := users.GetUserByID(ctx, u.ID); err != nil || got == nil || got.Username != "alice" {
			t.Fatalf("GetUserByID = %+v, %v", got, err)
		}
		if got, err := users.GetUserByID(ctx, 4242); err != nil || got != nil {
			t.Errorf("missing id: %+v, %v", got, err)
		}
		if got, err := users.GetUserByUsername(ctx, "nobody"); err != nil || got != nil {
			t.Errorf("missing username: %+v, %v", got, err)
		}
		if n, err := users.CountUsers(ctx); err != nil || n != 1 {
			t.Errorf("CountUsers = %d, %v", n, err)
		}
	})

	t.Run("create defaults", func(t *testing.T) {
		users, repo := setup(t)
		owner := mustCreateUser(t, users, "c", models.RoleCustomer)

		fb := &models.Feedback{Title: "t", Category: models.CategoryBug, Priority: models.PriorityLow, UserID: owner.ID}
		if err := repo.CreateFeedback(context.Background(), fb); err != nil {
			t.Fatalf("CreateFeedback: %v", err)
		}
		if fb.ID == 0 || fb.Status != models.StatusNew || fb.CreatedAt.IsZero() || fb.ClosedAt != nil {
			t.Errorf("unexpected defaults: %+v", fb)
		}

		bad := &models.Feedback{Title: "t", Category: "idea", Priority: models.PriorityLow, UserID: owner.ID}
		if err := repo.CreateFeedback(context.Background(), bad); err == nil {
			t.Error("invalid category persisted")
		}
	})

	t.Run("list filters and order", func(t *testing.T) {
		users, repo := setup(t)
		ctx := context.Background()
		owner := mustCreateUser(t, users, "c", models.RoleCustomer)

		mustCreateFeedback(t, repo, owner, "old bug", models.CategoryBug, models.StatusClosed, base.Add(-48*time.Hour))
		mustCreateFeedback(t, repo, owner, "feature", models.CategoryFeature, models.StatusNew, base.Add(-24*time.Hour))
		mustCreateFeedback(t, repo, owner, "new bug", models.CategoryBug, models.StatusNew, base)
		mustCreateFeedback(t, repo, owner, "mid bug", models.CategoryBug, models.StatusInReview, base.Add(-36*time.Hour))

		all, err := repo.ListFeedback(ctx, FeedbackFilter{})
		if err != nil {
			t.Fatalf("ListFeedback: %v", err)
		}
		if want := []string{"new bug", "feature", "mid bug", "old bug"}; !reflect.DeepEqual(titles(all), want) {
			t.Errorf("order = %v, want %v", titles(all), want)
		}
		if all[0].User == nil || all[0].User.Username != "c" {
			t.Errorf("submitter not loaded: %+v", all[0].User)
		}

		bugs, _ := repo.ListFeedback(ctx, FeedbackFilter{Category: models.CategoryBug})
		if want := []string{"new bug", "mid bug", "old bug"}; !reflect.DeepEqual(titles(bugs), want) {
			t.Errorf("bugs = %v, want %v", titles(bugs), want)
		}

		openBugs, _ := repo.ListFeedback(ctx, FeedbackFilter{
			Category: models.CategoryBug,
			Statuses: []models.Status{models.StatusNew, models.StatusInReview},
		})
		if want := []string{"new bug", "mid bug"}; !reflect.DeepEqual(titles(openBugs), want) {
			t.Errorf("open bugs = %v, want %v", titles(openBugs), want)
		}

		if n, _ := repo.CountFeedback(ctx, FeedbackFilter{Statuses: []models.Status{models.StatusNew}}); n != 2 {
			t.Errorf("count new = %d, want 2", n)
		}
		if n, _ := repo.CountFeedback(ctx, FeedbackFilter{Category: models.CategoryPraise}); n != 0 {
			t.Errorf("count praise = %d, want 0", n)
		}
	})

	t.Run("status transitions keep closed_at", func(t *testing.T) {
		users, repo := setup(t)
		ctx := context.Background()
		owner := mustCreateUser(t, users, "c", models.RoleCustomer)
		fb := mustCreateFeedback(t, repo, owner, "x", models.CategoryBug, models.StatusNew, base)

		closeTime := base.Add(3 * time.Hour)
		steps := []struct {
			status     models.Status
			at         time.Time
			wantClosed *time.Time
		}{
			{models.StatusInReview, base.Add(time.Hour), nil},
			{models.StatusClosed, closeTime, &closeTime},
			{models.StatusInReview, base.Add(5 * time.Hour), &closeTime},
		}
		for _, step := range steps {
			if err := repo.UpdateStatus(ctx, fb.ID, step.status, step.at); err != nil {
				t.Fatalf("UpdateStatus(%s): %v", step.status, err)
			}
			got, err := repo.GetFeedback(ctx, fb.ID)
			if err != nil || got == nil {
				t.Fatalf("GetFeedback: %+v, %v", got, err)
			}
			if got.Status != step.status {
				t.Errorf("status = %s, want %s", got.Status, step.status)
			}
			switch {
			case step.wantClosed == nil && got.ClosedAt != nil:
				t.Errorf("after %s: closed_at = %v, want nil", step.status, got.ClosedAt)
			case step.wantClosed != nil && (got.ClosedAt == nil || !got.ClosedAt.Equal(*step.wantClosed)):
				t.Errorf("after %s: closed_at = %v, want %v", step.status, got.ClosedAt, step.wantClosed)
			}
		}

		if err := repo.UpdateStatus(ctx, 4242, models.StatusClosed, base); !errors.Is(err, ErrFeedbackNotFound) {
			t.Errorf("missing id: err = %v", err)
		}
		if err := repo.UpdateStatus(ctx, fb.ID, "archived", base); err == nil {
			t.Error("invalid status accepted")
		}
	})

	t.Run("responses and cascade delete", func(t *testing.T) {
		users, repo := setup(t)
		ctx := context.Background()
		owner := mustCreateUser(t, users, "c", models.RoleCustomer)
		staff := mustCreateUser(t, users, "s", models.RoleSupport)
		fb := mustCreateFeedback(t, repo, owner, "x", models.CategoryBug, models.StatusNew, base)
		other := mustCreateFeedback(t, repo, owner, "y", models.CategoryPraise, models.StatusNew, base)

		for i, content := range []string{"second", "first"} {
			err := repo.AddResponse(ctx, &models.Response{
				Content:    content,
				CreatedAt:  base.Add(time.Duration(2-i) * time.Hour),
				FeedbackID: fb.ID,
				UserID:     staff.ID,
			})
			if err != nil {
				t.Fatalf("AddResponse: %v", err)
			}
		}
		_ = repo.AddResponse(ctx, &models.Response{Content: "keep", FeedbackID: other.ID, UserID: staff.ID})

		got, err := repo.GetFeedback(ctx, fb.ID)
		if err != nil || got == nil {
			t.Fatalf("GetFeedback: %+v, %v", got, err)
		}
		if len(got.Responses) != 2 || got.Responses[0].Content != "first" || got.Responses[1].Content != "second" {
			t.Fatalf("responses = %+v", got.Responses)
		}
		if got.Responses[0].User == nil || got.Responses[0].User.Username != "s" {
			t.Errorf("response author not loaded: %+v", got.Responses[0].User)
		}

		err = repo.AddResponse(ctx, &models.Response{Content: "orphan", FeedbackID: 4242, UserID: staff.ID})
		if !errors.Is(err, ErrFeedbackNotFound) {
			t.Errorf("response to missing feedback: err = %v", err)
		}

		if err := repo.DeleteFeedback(ctx, fb.ID); err != nil {
			t.Fatalf("DeleteFeedback: %v", err)
		}
		if got, _ := repo.GetFeedback(ctx, fb.ID); got != nil {
			t.Error("feedback still present after delete")
		}
		if err := repo.DeleteFeedback(ctx, fb.ID); !errors.Is(err, ErrFeedbackNotFound) {
			t.Errorf("second delete: err = %v", err)
		}
		kept, _ := repo.GetFeedback(ctx, other.ID)
		if kept == nil || len(kept.Responses) != 1 {
			t.Errorf("unrelated feedback lost responses: %+v", kept)
		}
	})
}

func TestGormRepositories(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) (UserRepository, FeedbackRepository) {
		users, feedback := setupTestDB(t)
		return users, feedback
	})
}

func TestGormDeleteLeavesNoOrphanResponses(t *testing.T) {
	users, repo := setupTestDB(t)
	ctx := context.Background()
	owner := mustCreateUser(t, users, "c", models.RoleCustomer)
	staff := mustCreateUser(t, users, "s", models.RoleSupport)
	fb := mustCreateFeedback(t, repo, owner, "x", models.CategoryBug, models.StatusNew, base)
	for i := 0; i < 3; i++ {
		if err := repo.AddResponse(ctx, &models.Response{Content: "r", FeedbackID: fb.ID, UserID: staff.ID}); err != nil {
			t.Fatalf("AddResponse: %v", err)
		}
	}

	if err := repo.DeleteFeedback(ctx, fb.ID); err != nil {
		t.Fatalf("DeleteFeedback: %v", err)
	}
	var n int64
	if err := repo.DB.Model(&models.Response{}).Where("feedback_id = ?", fb.ID).Count(&n).Error; err != nil {
		t.Fatalf("count responses: %v", err)
	}
	if n != 0 {
		t.Errorf("%d responses outlived their feedback", n)
	}
}
