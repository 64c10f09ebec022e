package listorders

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
	ListOrders(ctx context.Context, status string) ([]document.Document, error)
}

type queryOrdersRequest struct {
	Status string `schema:"status"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}

// ListOrders handles the list orders request.
//
//	@Summary	List orders
//	@Tags		orders
//	@Produce	json
//	@Param		status	query	string	false	"Exact status match"
//	@Success	200		{array}	object
//	@Failure	500		{object}	response.ErrorResponse
//	@Router		/api/orders [get]
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		response.Error(w, &validation.Error{Violations: []validation.Violation{{Field: "query", Message: err.Error()}}})
		slog.WarnContext(r.Context(), "Error decoding request", "error", err)

		return
	}

	orders, err := service.ListOrders(r.Context(), query.Status)
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error getting orders", "error", err)

		return
	}

	response.JSON(w, http.StatusOK, converters.DocumentsToResponse(orders))
}
