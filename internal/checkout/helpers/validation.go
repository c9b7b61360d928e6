package helpers

import (
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// MaxAddressLength bounds the free-text shipping address.
const MaxAddressLength = 500

// NormalizeAddress trims the address and rejects blank or oversized input.
func NormalizeAddress(raw string) (string, error) {
	address := strings.TrimSpace(raw)
	if address == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "address is required").
			WithDetails(map[string]string{"address": "required"})
	}
	if utf8.RuneCountInString(address) > MaxAddressLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "address is too long").
			WithDetails(map[string]string{"address": "max 500 characters"})
	}
	return address, nil
}
