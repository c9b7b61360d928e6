package identity

import (
	"net/http"
	"time"

	"github.com/angelmondragon/storefront/pkg/config"
)

// Resolution is the outcome of resolving a request's identity.
type Resolution struct {
	Identity Identity
	// Cookie re-asserts the identity on the response; nil only when signing failed.
	Cookie *http.Cookie
	// Fresh is true when a new synthetic identity was generated.
	Fresh bool
}

// Resolver reads the identity cookie or falls back to a generated identity. It never fails.
type Resolver struct {
	codec     *Codec
	secret    string
	generator Generator
	name      string
	ttl       time.Duration
	secure    bool
	now       func() time.Time
}

func NewResolver(cfg config.IdentityConfig, generator Generator) (*Resolver, error) {
	codec, err := NewCodec(cfg.CookieSecret, cfg.Issuer, cfg.CookieTTL)
	if err != nil {
		return nil, err
	}
	if generator == nil {
		generator = NewFakerGenerator(0)
	}
	name := cfg.CookieName
	if name == "" {
		name = "user"
	}
	return &Resolver{
		codec:     codec,
		secret:    cfg.CookieSecret,
		generator: generator,
		name:      name,
		ttl:       cfg.CookieTTL,
		secure:    cfg.CookieSecure,
		now:       time.Now,
	}, nil
}

// Fingerprint keys the identity with the cookie secret; see Identity.Fingerprint.
func (r *Resolver) Fingerprint(id Identity) string {
	return id.Fingerprint(r.secret)
}

// CookieName returns the configured cookie name.
func (r *Resolver) CookieName() string {
	return r.name
}

// Resolve returns the cookie identity when it verifies, otherwise a fresh one.
func (r *Resolver) Resolve(req *http.Request) Resolution {
	now := r.now()

	res := Resolution{}
	if c, err := req.Cookie(r.name); err == nil && c.Value != "" {
		if id, err := r.codec.Decode(c.Value, now); err == nil {
			res.Identity = id
		}
	}
	if res.Identity.IsZero() {
		res.Identity = r.generator.Generate()
		res.Fresh = true
	}

	value, err := r.codec.Encode(res.Identity, now)
	if err != nil {
		return res
	}
	res.Cookie = &http.Cookie{
		Name:     r.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(r.ttl / time.Second),
		Expires:  now.Add(r.ttl),
		HttpOnly: true,
		Secure:   r.secure,
		SameSite: http.SameSiteLaxMode,
	}
	return res
}
