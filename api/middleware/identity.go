package middleware

import (
	"net/http"

	"github.com/angelmondragon/storefront/internal/identity"
	"github.com/angelmondragon/storefront/pkg/logger"
)

type identityResolver interface {
	Resolve(*http.Request) identity.Resolution
	Fingerprint(identity.Identity) string
}

// Identity resolves the shopper from the identity cookie, re-sets the cookie on
// every response and exposes the identity to handlers through the context.
func Identity(resolver identityResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := resolver.Resolve(r)
			if res.Cookie != nil {
				http.SetCookie(w, res.Cookie)
			}

			fingerprint := resolver.Fingerprint(res.Identity)
			ctx := identity.WithIdentity(r.Context(), res.Identity)
			ctx = WithFingerprint(ctx, fingerprint)
			if logg != nil {
				ctx = logg.WithIdentity(ctx, fingerprint)
				if res.Fresh {
					logg.Debug(ctx, "identity.generated")
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
