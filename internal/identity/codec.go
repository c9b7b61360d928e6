package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the signed cookie payload.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Codec signs and verifies identity cookie values.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewCodec(secret, issuer string, ttl time.Duration) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("identity cookie secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("identity cookie ttl must be positive")
	}
	return &Codec{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

// Encode returns a signed token carrying the identity, valid for the codec TTL from now.
func (c *Codec) Encode(id Identity, now time.Time) (string, error) {
	if id.IsZero() {
		return "", fmt.Errorf("identity name and email are required")
	}
	claims := Claims{
		Name:  id.Name,
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing identity cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies signature, issuer and expiry and returns the embedded identity.
func (c *Codec) Decode(token string, now time.Time) (Identity, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method %s", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}

	id := Identity{Name: claims.Name, Email: claims.Email}
	if id.IsZero() {
		return Identity{}, fmt.Errorf("identity cookie carries empty name or email")
	}
	return id, nil
}
