package auth

import "feedbackportal/models"

// RequireRole is the role gate: true iff user is present and holds one of
// the allowed roles.
func RequireRole(user *models.User, allowed ...models.Role) bool {
	return user.HasRole(allowed...)
}

// HomePath is where a user lands after login or on "/".
func HomePath(user *models.User) string {
	if RequireRole(user, models.RoleAdmin) {
		return "/dashboard"
	}
	return "/feedback"
}
