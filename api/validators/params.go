package validators

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// ParseUUIDParam reads a chi URL parameter as a UUID.
func ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return parseUUID(chi.URLParam(r, name), name)
}

// ParseFormUUID reads a form field from the request body as a UUID.
func ParseFormUUID(r *http.Request, name string) (uuid.UUID, error) {
	if err := parseForm(r); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	return parseUUID(r.PostForm.Get(name), name)
}

// parseForm is r.ParseForm plus urlencoded DELETE bodies, which net/http leaves unread.
func parseForm(r *http.Request) error {
	if r.Method == http.MethodDelete && r.PostForm == nil && r.Body != nil &&
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil {
			return err
		}
		if len(body) > maxBodyBytes {
			return errors.New("form body too large")
		}
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return err
		}
		r.PostForm = values
	}
	return r.ParseForm()
}

func parseUUID(raw, field string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, field+" is required").
			WithDetails(map[string]any{"field": field})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, field+" must be a valid uuid").
			WithDetails(map[string]any{"field": field})
	}
	return id, nil
}
