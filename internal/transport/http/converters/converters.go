package converters

import (
	"github.com/corray333/tutti-amici/internal/service/models/document"
)

// DocumentsToResponse converts stored documents to their public form, with
// the internal identifier exposed as "id".
func DocumentsToResponse(docs []document.Document) []document.Document {
	out := make([]document.Document, len(docs))
	for i, doc := range docs {
		out[i] = doc.Public()
	}

	return out
}

// CreatedResponse is returned by creation endpoints.
type CreatedResponse struct {
	ID string `json:"id"`
}
