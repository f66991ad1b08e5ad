package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Renderer turns a named view and its data context into HTML.
type Renderer interface {
	Render(w io.Writer, name string, data map[string]any) error
}

// Deny answers an authorization failure with a silent redirect to fallback.
// All role-gate rejections go through here.
func Deny(w http.ResponseWriter, r *http.Request, fallback string) {
	redirect(w, r, fallback)
}

func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusFound)
}

func render(w http.ResponseWriter, views Renderer, status int, name string, data map[string]any) {
	var buf bytes.Buffer
	if err := views.Render(&buf, name, data); err != nil {
		log.WithError(err).WithField("view", name).Error("render view")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithError(err).WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("request failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
