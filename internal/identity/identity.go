package identity

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Identity is the synthetic shopper persisted only in the client cookie.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Key partitions baskets, orders and audit entries. The format is part of stored data.
func (i Identity) Key() string {
	return i.Name + " - " + i.Email
}

// IsZero reports whether the identity carries no usable name or e-mail.
func (i Identity) IsZero() bool {
	return strings.TrimSpace(i.Name) == "" || strings.TrimSpace(i.Email) == ""
}

// Fingerprint is a keyed BLAKE2b digest of Key, safe to put in logs and redis keys.
func (i Identity) Fingerprint(secret string) string {
	key := blake2b.Sum256([]byte(secret))
	h, err := blake2b.New256(key[:])
	if err != nil {
		// a 32 byte key is always accepted
		panic(err)
	}
	h.Write([]byte(i.Key()))
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// Fingerprinter derives the log-safe token for an identity.
type Fingerprinter interface {
	Fingerprint(id Identity) string
}
