package authz

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	obsmw "messenger/internal/observability/middleware"
)

// Middleware gates protected routes behind a valid bearer token and stores
// the subject in the request context.
func (t *Tokens) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := obsmw.RequestIDFromContext(r.Context())
		raw := r.Header.Get("Authorization")
		if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			slog.Warn("auth missing bearer", "request_id", reqID)
			return
		}
		sub, err := t.Verify(strings.TrimSpace(raw[len("Bearer "):]))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			slog.Warn("auth rejected token", "error", err, "request_id", reqID)
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWithSubject(r.Context(), sub)))
	})
}

type subjectKey struct{}

func contextWithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey{}, sub)
}

func SubjectFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(subjectKey{}).(string)
	return v, ok
}
