package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/davidbz/pdfnotes/internal/observability"
)

// Recover converts a panic in a handler into a 500 response so a single
// request can never take the process down.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
					panic(rec)
				}

				observability.FromContext(r.Context()).Error("handler panicked",
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"detail":"Internal Server Error"}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
