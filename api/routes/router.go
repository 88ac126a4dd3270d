package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/craftline/pos-terminal/api/controllers"
	"github.com/craftline/pos-terminal/api/middleware"
	cartsvc "github.com/craftline/pos-terminal/internal/cart"
	catalogsvc "github.com/craftline/pos-terminal/internal/catalog"
	checkoutsvc "github.com/craftline/pos-terminal/internal/checkout"
	"github.com/craftline/pos-terminal/pkg/config"
	"github.com/craftline/pos-terminal/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	cartStore *cartsvc.Store,
	catalogService *catalogsvc.Service,
	coordinator *checkoutsvc.Coordinator,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartStore, logg))
			r.Post("/add", controllers.CartAdd(cartStore, logg))
			r.Post("/{lineID}/update", controllers.CartUpdateQuantity(cartStore, logg))
			r.Delete("/{lineID}", controllers.CartRemove(cartStore, logg))
			r.Delete("/", controllers.CartClear(cartStore, logg))
			r.Put("/customer", controllers.CartSetCustomer(cartStore, logg))
			r.Delete("/customer", controllers.CartRemoveCustomer(cartStore, logg))
			r.Put("/payment-method", controllers.CartSetPaymentMethod(cartStore, logg))
		})

		r.Get("/reservation", controllers.ReservationAggregate(cartStore, catalogService, logg))
		r.Post("/checkout", controllers.Checkout(coordinator, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogSnapshot(catalogService, logg))
			r.Post("/refresh", controllers.CatalogRefresh(catalogService, logg))
		})
	})

	return r
}
