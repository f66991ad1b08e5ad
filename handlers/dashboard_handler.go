package handlers

import (
	"net/http"
	"time"

	"feedbackportal/auth"
	"feedbackportal/models"
	"feedbackportal/repository"
)

type DashboardHandler struct {
	Repo  *repository.DashboardRepository
	Views Renderer
	PDF   PDFGenerator
	// Archive is optional; reports are only streamed back when nil.
	Archive ReportArchiver
	Now     func() time.Time
}

// Dashboard renders admin metrics. Everyone else goes to the list.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if !auth.RequireRole(user, models.RoleAdmin) {
		Deny(w, r, "/feedback")
		return
	}

	summary, err := h.Repo.Summary(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}

	render(w, h.Views, http.StatusOK, "dashboard.html", map[string]any{
		"user":                 user,
		"total_feedback":       summary.TotalFeedback,
		"open_items":           summary.OpenItems,
		"avg_resolution_hours": summary.AvgResolutionHours,
		"cat_breakdown":        summary.CategoryBreakdown,
		"categories":           models.Categories,
	})
}

func (h *DashboardHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}
