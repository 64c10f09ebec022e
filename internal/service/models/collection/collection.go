package collection

import (
	"errors"
)

// Kind identifies which record kind a document belongs to.
type Kind string

const (
	MenuItem Kind = "menuitem"
	Order    Kind = "order"
)

var ErrInvalidKind = errors.New("invalid collection kind")

func (k Kind) String() string {
	return string(k)
}

// All returns every known kind.
func All() []Kind {
	return []Kind{MenuItem, Order}
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case MenuItem.String():
		return MenuItem, nil
	case Order.String():
		return Order, nil
	default:
		return "", ErrInvalidKind
	}
}
