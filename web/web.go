// Package web holds the portal's page templates and static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"
)

//go:embed templates/*.html static/*
var files embed.FS

// Pages rendered inside the shared layout.
var layoutPages = []string{
	"login.html",
	"submit_feedback.html",
	"feedback_list.html",
	"feedback_detail.html",
	"dashboard.html",
}

// Standalone pages (printed documents) carry their own <html>.
var standalonePages = []string{
	"dashboard_report.html",
}

type page struct {
	tmpl  *template.Template
	entry string
}

// TemplateRenderer renders named pages from the embedded templates.
type TemplateRenderer struct {
	pages map[string]page
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	r := &TemplateRenderer{pages: make(map[string]page)}
	for _, name := range layoutPages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = page{tmpl: tmpl, entry: "layout"}
	}
	for _, name := range standalonePages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = page{tmpl: tmpl, entry: name}
	}
	return r, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data map[string]any) error {
	p, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	return p.tmpl.ExecuteTemplate(w, p.entry, data)
}

// Static serves the embedded assets; mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

var funcs = template.FuncMap{
	"fmtTime": fmtTime,
}

func fmtTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return "-"
		}
		return t.UTC().Format("2006-01-02 15:04")
	case *time.Time:
		if t == nil {
			return "-"
		}
		return fmtTime(*t)
	}
	return "-"
}
