package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/angelmondragon/storefront/api/responses"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// APIPrefix marks the JSON routes; everything else is served as HTML.
const APIPrefix = "/api/"

// ErrorResponder writes an error for page (non-JSON) requests.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// IsAPIRequest reports whether r targets the JSON API.
func IsAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, APIPrefix)
}

// Recoverer turns a handler panic into an INTERNAL_ERROR. API requests get the
// JSON envelope; page requests go to pageErrors when one is configured.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recoverer(logg *logger.Logger, pageErrors ErrorResponder) func(http.Handler) http.Handler {
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

				err := pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("panic: %v", rec), "panic")
				ctx := r.Context()
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"panic":  fmt.Sprint(rec),
						"method": r.Method,
						"path":   r.URL.Path,
					})
					logg.Error(logCtx, "panic.recovered", err)
				}

				if pageErrors != nil && !IsAPIRequest(r) {
					pageErrors(w, r, err)
					return
				}
				responses.WriteError(ctx, nil, w, err)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
