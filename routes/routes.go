package routes

import (
	"net/http"
	"time"

	"feedbackportal/auth"
	"feedbackportal/handlers"

	log "github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Request logging middleware
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("request")
	})
}

func SetupRoutes(
	sessions *auth.SessionManager,
	userHandler *handlers.UserHandler,
	feedbackHandler *handlers.FeedbackHandler,
	dashboardHandler *handlers.DashboardHandler,
	static http.Handler,
) http.Handler {
	mux := http.NewServeMux()
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return handlers.RequireUser(sessions, h)
	}

	// Public routes
	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /login", userHandler.LoginPage)
	mux.HandleFunc("POST /login", userHandler.Login)
	mux.HandleFunc("GET /logout", userHandler.Logout)
	if static != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", static))
	}

	mux.HandleFunc("GET /{$}", authed(userHandler.Index))

	// Feedback routes
	mux.HandleFunc("GET /feedback", authed(feedbackHandler.ListFeedback))
	mux.HandleFunc("GET /feedback/new", authed(feedbackHandler.NewFeedbackPage))
	mux.HandleFunc("POST /feedback/new", authed(feedbackHandler.SubmitFeedback))
	mux.HandleFunc("GET /feedback/{id}", authed(feedbackHandler.FeedbackDetail))
	mux.HandleFunc("POST /feedback/{id}/response", authed(feedbackHandler.AddResponse))
	mux.HandleFunc("POST /feedback/{id}/status", authed(feedbackHandler.UpdateStatus))
	mux.HandleFunc("POST /feedback/{id}/delete", authed(feedbackHandler.DeleteFeedback))

	// Admin routes
	mux.HandleFunc("GET /dashboard", authed(dashboardHandler.Dashboard))
	mux.HandleFunc("GET /dashboard/report", authed(dashboardHandler.DashboardReport))

	return handlers.RecoverWrapper(withLogging(mux))
}
