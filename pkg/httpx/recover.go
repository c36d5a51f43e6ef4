package httpx

import (
	"net/http"
	"runtime/debug"

	"github.com/aussiebroadwan/taskboard/pkg/slogx"
)

// Recover turns a handler panic into a logged 500.
func Recover(msg string) Middleware {
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
				slogx.FromContext(r.Context()).Error("handler panic",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				WriteError(w, http.StatusInternalServerError, msg)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
