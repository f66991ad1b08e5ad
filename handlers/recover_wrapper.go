package handlers

import (
	"net/http"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// RecoverWrapper wraps an http.Handler with panic recovery
func RecoverWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				log.WithFields(log.Fields{
					"panic":  rec,
					"method": r.Method,
					"path":   r.URL.Path,
				}).Errorf("panic recovered\n%s", stack)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
