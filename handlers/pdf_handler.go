package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"feedbackportal/auth"
	"feedbackportal/models"

	log "github.com/sirupsen/logrus"
)

type PDFGenerator interface {
	GeneratePDF(ctx context.Context, html []byte) ([]byte, error)
}

type ReportArchiver interface {
	// Upload stores data under key and returns where it can be fetched.
	Upload(ctx context.Context, data []byte, key string) (string, error)
}

// DashboardReport renders the dashboard summary as a PDF download and, when
// an archiver is configured, keeps a copy in object storage.
func (h *DashboardHandler) DashboardReport(w http.ResponseWriter, r *http.Request) {
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

	now := h.now()
	var html bytes.Buffer
	err = h.Views.Render(&html, "dashboard_report.html", map[string]any{
		"Summary":     summary,
		"Categories":  models.Categories,
		"GeneratedAt": now,
		"GeneratedBy": user.Username,
	})
	if err != nil {
		serverError(w, r, err)
		return
	}

	pdfBytes, err := h.PDF.GeneratePDF(r.Context(), html.Bytes())
	if err != nil {
		serverError(w, r, fmt.Errorf("generate report pdf: %w", err))
		return
	}

	filename := fmt.Sprintf("feedback-report-%s.pdf", now.Format("20060102"))
	if h.Archive != nil {
		key := fmt.Sprintf("reports/feedback-report-%d.pdf", now.Unix())
		if url, err := h.Archive.Upload(r.Context(), pdfBytes, key); err != nil {
			// The caller still gets the document.
			log.WithError(err).WithField("key", key).Warn("archive report")
		} else {
			log.WithField("url", url).Info("report archived")
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
