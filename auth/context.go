package auth

import (
	"context"

	"feedbackportal/models"
)

type contextKey struct{}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the user resolved for this request, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(contextKey{}).(*models.User)
	return user
}
