package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/internal/identity"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// shopperFromRequest returns the identity resolved by the Identity middleware.
func shopperFromRequest(r *http.Request) (identity.Identity, error) {
	id, ok := identity.FromContext(r.Context())
	if !ok || id.IsZero() {
		return identity.Identity{}, pkgerrors.New(pkgerrors.CodeInternal, "identity context missing")
	}
	return id, nil
}
