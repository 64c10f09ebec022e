package listmenuitems

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/tutti-amici/internal/service/models/document"
	"github.com/corray333/tutti-amici/internal/service/validation"
	"github.com/corray333/tutti-amici/internal/transport/http/converters"
	"github.com/corray333/tutti-amici/internal/transport/http/response"
	"github.com/gorilla/schema"
)

type service interface {
	ListMenuItems(ctx context.Context, category string) ([]document.Document, error)
}

type queryMenuItemsRequest struct {
	Category string `schema:"category"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}

// ListMenuItems handles the list menu items request.
//
//	@Summary	List menu items
//	@Tags		menu
//	@Produce	json
//	@Param		category	query	string	false	"Exact category match"
//	@Success	200			{array}	object
//	@Failure	500			{object}	response.ErrorResponse
//	@Router		/api/menu [get]
func ListMenuItems(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryMenuItemsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		response.Error(w, &validation.Error{Violations: []validation.Violation{{Field: "query", Message: err.Error()}}})
		slog.WarnContext(r.Context(), "Error decoding request", "error", err)

		return
	}

	items, err := service.ListMenuItems(r.Context(), query.Category)
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error getting menu items", "error", err)

		return
	}

	response.JSON(w, http.StatusOK, converters.DocumentsToResponse(items))
}
