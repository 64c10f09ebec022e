package createorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/tutti-amici/internal/service/models/order"
	"github.com/corray333/tutti-amici/internal/transport/http/converters"
	"github.com/corray333/tutti-amici/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, o order.Order) (string, error)
}

// CreateOrder handles the create order request.
//
//	@Summary	Place an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		order.Order	true	"Order"
//	@Success	201		{object}	converters.CreatedResponse
//	@Failure	422		{object}	response.ErrorResponse
//	@Failure	500		{object}	response.ErrorResponse
//	@Router		/api/orders [post]
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	o, err := order.Decode(r.Body)
	if err != nil {
		response.Error(w, err)
		slog.WarnContext(r.Context(), "Error validating request body for create order", "error", err)

		return
	}

	id, err := service.CreateOrder(r.Context(), o)
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error creating order", "error", err)

		return
	}

	response.JSON(w, http.StatusCreated, converters.CreatedResponse{ID: id})
}
