package diagnostics

import (
	"context"
	"net/http"

	"github.com/corray333/tutti-amici/internal/service/services/diagsvc"
	"github.com/corray333/tutti-amici/internal/transport/http/response"
)

type service interface {
	Diagnose(ctx context.Context) diagsvc.Report
}

// Diagnose reports backend and database state. It always answers 200.
//
//	@Summary	Backend and database diagnostics
//	@Tags		diagnostics
//	@Produce	json
//	@Success	200	{object}	diagsvc.Report
//	@Router		/test [get]
func Diagnose(w http.ResponseWriter, r *http.Request, service service) {
	response.JSON(w, http.StatusOK, service.Diagnose(r.Context()))
}
