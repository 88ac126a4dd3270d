package controllers

import (
	"net/http"

	"github.com/craftline/pos-terminal/api/responses"
	checkoutsvc "github.com/craftline/pos-terminal/internal/checkout"
	"github.com/craftline/pos-terminal/pkg/logger"
)

// Checkout runs one checkout attempt. Guard rejections (empty cart, attempt
// already in flight) map to error responses; terminal outcomes, including
// remote failures, come back as a result the caller branches on.
func Checkout(coordinator *checkoutsvc.Coordinator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := coordinator.Process(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
