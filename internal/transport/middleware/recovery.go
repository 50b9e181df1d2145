package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/carbonaegis/aegis-backend/pkg/ctxutil"
)

// Recovery returns middleware that turns a handler panic into a JSON 500.
// The panic is logged with its stack and the request id so the failing
// request can be correlated with the access log. http.ErrAbortHandler is
// re-raised, as the server uses it to abort the connection quietly.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"internal server error"}` + "\n")) //nolint:errcheck
			}()
			next.ServeHTTP(w, r)
		})
	}
}
