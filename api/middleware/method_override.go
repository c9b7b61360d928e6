package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const methodOverrideField = "_method"

// MethodOverride lets HTML forms, which can only POST, reach DELETE/PUT/PATCH
// handlers through a hidden _method field. It must run before chi resolves the
// route, so mount it with the top-level router's Use.
func MethodOverride() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && isFormPost(r) {
				if err := r.ParseForm(); err == nil {
					switch method := strings.ToUpper(strings.TrimSpace(r.PostForm.Get(methodOverrideField))); method {
					case http.MethodDelete, http.MethodPut, http.MethodPatch:
						r.Method = method
						if rctx := chi.RouteContext(r.Context()); rctx != nil {
							rctx.RouteMethod = method
						}
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isFormPost(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}
