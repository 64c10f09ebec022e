package document

import (
	"fmt"
)

const (
	// InternalIDKey is the key under which storage keeps the generated identifier.
	InternalIDKey = "_id"
	// PublicIDKey is the key the identifier is exposed under.
	PublicIDKey = "id"
)

// Document is a stored record as read back from the document store.
type Document map[string]any

// Public returns a copy of the document with the internal identifier
// renamed to its public key and rendered as a string.
func (d Document) Public() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k == InternalIDKey {
			continue
		}
		out[k] = v
	}

	if id, ok := d[InternalIDKey]; ok {
		out[PublicIDKey] = idString(id)
	}

	return out
}

func idString(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case interface{ Hex() string }:
		return v.Hex()
	default:
		return fmt.Sprint(v)
	}
}

// Filter restricts a read to documents whose Key field equals Value.
type Filter struct {
	Key   string
	Value string
}

// NewFilter returns nil when value is empty, meaning no filter.
func NewFilter(key, value string) *Filter {
	if value == "" {
		return nil
	}

	return &Filter{Key: key, Value: value}
}
