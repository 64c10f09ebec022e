package createmenuitem

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/tutti-amici/internal/service/models/menuitem"
	"github.com/corray333/tutti-amici/internal/transport/http/converters"
	"github.com/corray333/tutti-amici/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	CreateMenuItem(ctx context.Context, item menuitem.MenuItem) (string, error)
}

// CreateMenuItem handles the create menu item request.
//
//	@Summary	Create a menu item
//	@Tags		menu
//	@Accept		json
//	@Produce	json
//	@Param		item	body		menuitem.MenuItem	true	"Menu item"
//	@Success	201		{object}	converters.CreatedResponse
//	@Failure	422		{object}	response.ErrorResponse
//	@Failure	500		{object}	response.ErrorResponse
//	@Router		/api/menu [post]
func CreateMenuItem(w http.ResponseWriter, r *http.Request, service service) {
	item, err := menuitem.Decode(r.Body)
	if err != nil {
		response.Error(w, err)
		slog.WarnContext(r.Context(), "Error validating request body for create menu item", "error", err)

		return
	}

	id, err := service.CreateMenuItem(r.Context(), item)
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error creating menu item", "error", err)

		return
	}

	response.JSON(w, http.StatusCreated, converters.CreatedResponse{ID: id})
}
