package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bdevries/parceldesk-backend/api/controllers"
	"github.com/bdevries/parceldesk-backend/api/middleware"
	checkoutsvc "github.com/bdevries/parceldesk-backend/internal/checkout"
	deliverysvc "github.com/bdevries/parceldesk-backend/internal/delivery"
	"github.com/bdevries/parceldesk-backend/pkg/config"
	"github.com/bdevries/parceldesk-backend/pkg/logger"
	"github.com/bdevries/parceldesk-backend/pkg/metrics"
	"github.com/bdevries/parceldesk-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	cache redis.Pinger,
	checkoutService checkoutsvc.Service,
	deliveryService deliverysvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, cache))
	})

	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/quotes", controllers.CreateQuote(checkoutService, logg))
		r.Get("/checkout/settings", controllers.CheckoutSettings(checkoutService, logg))
		r.Get("/delivery-options", controllers.DeliveryOptions(deliveryService, logg))
	})

	return r
}
