package enums

import "fmt"

// BasketStatus tracks whether a basket is still open or already checked out.
type BasketStatus string

const (
	BasketStatusPending   BasketStatus = "PENDING"
	BasketStatusCompleted BasketStatus = "COMPLETED"
)

var validBasketStatuses = []BasketStatus{
	BasketStatusPending,
	BasketStatusCompleted,
}

// String implements fmt.Stringer.
func (s BasketStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known BasketStatus.
func (s BasketStatus) IsValid() bool {
	for _, candidate := range validBasketStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseBasketStatus converts raw input into a BasketStatus.
func ParseBasketStatus(value string) (BasketStatus, error) {
	for _, candidate := range validBasketStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid basket status %q", value)
}
