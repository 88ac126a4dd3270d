package controllers

import (
	"net/http"

	"github.com/craftline/pos-terminal/api/responses"
	cartsvc "github.com/craftline/pos-terminal/internal/cart"
	catalogsvc "github.com/craftline/pos-terminal/internal/catalog"
	"github.com/craftline/pos-terminal/internal/reservation"
	"github.com/craftline/pos-terminal/pkg/logger"
)

type catalogView struct {
	Categories    []catalogsvc.Category     `json:"categories"`
	Units         []catalogsvc.Unit         `json:"units"`
	Ingredients   []catalogsvc.Ingredient   `json:"ingredients"`
	Consumables   []catalogsvc.Consumable   `json:"consumables"`
	ProcessGroups []catalogsvc.ProcessGroup `json:"process_groups"`
	Recipes       []catalogsvc.MasterRecipe `json:"recipes"`
	Products      []catalogsvc.Product      `json:"products"`
}

func CatalogSnapshot(svc *catalogsvc.Service, _ *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap := svc.Snapshot()
		responses.WriteSuccess(w, catalogView{
			Categories:    snap.Categories,
			Units:         snap.Units,
			Ingredients:   snap.Ingredients,
			Consumables:   snap.Consumables,
			ProcessGroups: snap.ProcessGroups,
			Recipes:       snap.Recipes,
			Products:      snap.Products,
		})
	}
}

// CatalogRefresh reloads the reference data. A degraded refresh (some lists
// empty) is still a success: the snapshot was installed.
func CatalogRefresh(svc *catalogsvc.Service, _ *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		degraded := svc.Refresh(r.Context()) != nil
		responses.WriteSuccess(w, map[string]any{
			"refreshed": true,
			"degraded":  degraded,
		})
	}
}

// ReservationAggregate exposes the advisory ingredient/consumable draw-down
// implied by the current cart.
func ReservationAggregate(store *cartsvc.Store, svc *catalogsvc.Service, _ *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		agg := reservation.Compute(store.Lines(), svc.Snapshot())
		responses.WriteSuccess(w, agg)
	}
}
