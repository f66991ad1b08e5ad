package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"feedbackportal/auth"
	"feedbackportal/models"
	"feedbackportal/repository"
)

type FeedbackHandler struct {
	Repo  repository.FeedbackRepository
	Views Renderer
	Now   func() time.Time
}

var (
	submitRoles = []models.Role{models.RoleCustomer, models.RoleSupport}
	staffRoles  = []models.Role{models.RoleSupport, models.RoleAdmin}
)

func (h *FeedbackHandler) NewFeedbackPage(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if !auth.RequireRole(user, submitRoles...) {
		Deny(w, r, "/feedback")
		return
	}
	h.renderSubmitForm(w, http.StatusOK, user, FeedbackForm{
		Category: string(models.CategoryBug),
		Priority: string(models.PriorityMedium),
	}, "")
}

// SubmitFeedback creates a new item owned by the caller. Status and
// creation time are always set here, never taken from the form.
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if !auth.RequireRole(user, submitRoles...) {
		Deny(w, r, "/feedback")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderSubmitForm(w, http.StatusBadRequest, user, FeedbackForm{}, "Invalid request")
		return
	}

	form := FeedbackForm{
		Title:       strings.TrimSpace(r.PostForm.Get("title")),
		Description: strings.TrimSpace(r.PostForm.Get("description")),
		Category:    r.PostForm.Get("category"),
		Priority:    r.PostForm.Get("priority"),
	}
	if err := validate.Struct(form); err != nil {
		h.renderSubmitForm(w, http.StatusBadRequest, user, form, validationMessage(err))
		return
	}

	fb := &models.Feedback{
		Title:       form.Title,
		Description: form.Description,
		Category:    models.Category(form.Category),
		Priority:    models.Priority(form.Priority),
		Status:      models.StatusNew,
		CreatedAt:   h.now(),
		UserID:      user.ID,
	}
	if err := h.Repo.CreateFeedback(r.Context(), fb); err != nil {
		serverError(w, r, err)
		return
	}
	redirect(w, r, "/feedback")
}

// ListFeedback shows all items, optionally narrowed by ?category= and
// ?status_filter=. "all", empty and unknown values do not filter.
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter repository.FeedbackFilter
	currentCategory, currentStatus := "all", "all"

	if c, err := models.ParseCategory(q.Get("category")); err == nil {
		filter.Category = c
		currentCategory = string(c)
	}
	if s, err := models.ParseStatus(q.Get("status_filter")); err == nil {
		filter.Statuses = []models.Status{s}
		currentStatus = string(s)
	}

	list, err := h.Repo.ListFeedback(r.Context(), filter)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Feedback{}
	}

	render(w, h.Views, http.StatusOK, "feedback_list.html", map[string]any{
		"user":             auth.UserFromContext(r.Context()),
		"feedbacks":        list,
		"categories":       models.Categories,
		"statuses":         models.Statuses,
		"current_category": currentCategory,
		"current_status":   currentStatus,
	})
}

func (h *FeedbackHandler) FeedbackDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := feedbackID(r)
	if !ok {
		redirect(w, r, "/feedback")
		return
	}
	h.renderDetail(w, r, id, http.StatusOK, "")
}

// AddResponse appends a staff reply. Non-staff are bounced back to the
// detail page without changes.
func (h *FeedbackHandler) AddResponse(w http.ResponseWriter, r *http.Request) {
	id, ok := feedbackID(r)
	if !ok {
		redirect(w, r, "/feedback")
		return
	}
	user := auth.UserFromContext(r.Context())
	if !auth.RequireRole(user, staffRoles...) {
		Deny(w, r, detailPath(id))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderDetail(w, r, id, http.StatusBadRequest, "Invalid request")
		return
	}

	form := ResponseForm{Content: strings.TrimSpace(r.PostForm.Get("content"))}
	if err := validate.Struct(form); err != nil {
		h.renderDetail(w, r, id, http.StatusBadRequest, validationMessage(err))
		return
	}

	err := h.Repo.AddResponse(r.Context(), &models.Response{
		Content:    form.Content,
		CreatedAt:  h.now(),
		FeedbackID: id,
		UserID:     user.ID,
	})
	if errors.Is(err, repository.ErrFeedbackNotFound) {
		redirect(w, r, "/feedback")
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	redirect(w, r, detailPath(id))
}

// UpdateStatus moves an item to the submitted status. Closing stamps
// closed_at; any other status leaves it as it was. Unknown ids are a no-op.
func (h *FeedbackHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := feedbackID(r)
	if !ok {
		redirect(w, r, "/feedback")
		return
	}
	user := auth.UserFromContext(r.Context())
	if !auth.RequireRole(user, staffRoles...) {
		Deny(w, r, detailPath(id))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderDetail(w, r, id, http.StatusBadRequest, "Invalid request")
		return
	}

	form := StatusForm{Status: r.PostForm.Get("status")}
	if err := validate.Struct(form); err != nil {
		h.renderDetail(w, r, id, http.StatusBadRequest, validationMessage(err))
		return
	}

	err := h.Repo.UpdateStatus(r.Context(), id, models.Status(form.Status), h.now())
	if err != nil && !errors.Is(err, repository.ErrFeedbackNotFound) {
		serverError(w, r, err)
		return
	}
	redirect(w, r, detailPath(id))
}

// DeleteFeedback removes an item and its responses. Admin only.
func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := feedbackID(r)
	if !ok {
		redirect(w, r, "/feedback")
		return
	}
	if !auth.RequireRole(auth.UserFromContext(r.Context()), models.RoleAdmin) {
		Deny(w, r, detailPath(id))
		return
	}

	err := h.Repo.DeleteFeedback(r.Context(), id)
	if err != nil && !errors.Is(err, repository.ErrFeedbackNotFound) {
		serverError(w, r, err)
		return
	}
	redirect(w, r, "/feedback")
}

func (h *FeedbackHandler) renderSubmitForm(w http.ResponseWriter, status int, user *models.User, form FeedbackForm, msg string) {
	render(w, h.Views, status, "submit_feedback.html", map[string]any{
		"user":       user,
		"categories": models.Categories,
		"priorities": models.Priorities,
		"form":       form,
		"error":      msg,
	})
}

func (h *FeedbackHandler) renderDetail(w http.ResponseWriter, r *http.Request, id int64, status int, msg string) {
	fb, err := h.Repo.GetFeedback(r.Context(), id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if fb == nil {
		redirect(w, r, "/feedback")
		return
	}

	user := auth.UserFromContext(r.Context())
	render(w, h.Views, status, "feedback_detail.html", map[string]any{
		"user":        user,
		"feedback":    fb,
		"statuses":    models.Statuses,
		"can_respond": auth.RequireRole(user, staffRoles...),
		"can_delete":  auth.RequireRole(user, models.RoleAdmin),
		"error":       msg,
	})
}

func (h *FeedbackHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

func feedbackID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func detailPath(id int64) string {
	return fmt.Sprintf("/feedback/%d", id)
}
