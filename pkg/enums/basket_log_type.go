package enums

import "fmt"

// BasketLogType labels an audit entry appended on every basket mutation.
type BasketLogType string

const (
	BasketLogProductAdded   BasketLogType = "PRODUCT_ADDED"
	BasketLogProductRemoved BasketLogType = "PRODUCT_REMOVED"
)

var validBasketLogTypes = []BasketLogType{
	BasketLogProductAdded,
	BasketLogProductRemoved,
}

func (t BasketLogType) String() string {
	return string(t)
}

func (t BasketLogType) IsValid() bool {
	for _, candidate := range validBasketLogTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseBasketLogType converts raw input into a BasketLogType.
func ParseBasketLogType(value string) (BasketLogType, error) {
	for _, candidate := range validBasketLogTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid basket log type %q", value)
}
