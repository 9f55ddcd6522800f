package api

import (
	_ "fxconvert/docs"
	"fxconvert/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
	"github.com/ulule/limiter/v3"
	limitermw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
)

// NewRouter wires all HTTP routes. A nil rateLimiter disables rate limiting.
func NewRouter(rateHandler *handler.Handler, rateLimiter *limiter.Limiter) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI and metrics stay outside the rate-limited group.
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		if rateLimiter != nil {
			r.Use(limitermw.NewMiddleware(rateLimiter).Handler)
		}

		r.Get("/api/v1/rates/{base:[A-Za-z]{3}}/{target:[A-Za-z]{3}}", rateHandler.GetRate)
		r.Get("/api/v1/convert/{base:[A-Za-z]{3}}/{target:[A-Za-z]{3}}", rateHandler.Convert)
		r.Get("/api/v1/history/{base:[A-Za-z]{3}}/{target:[A-Za-z]{3}}", rateHandler.GetHistory)
		r.Get("/api/v1/pairs", rateHandler.GetPairs)
		r.Get("/api/v1/cache/{base:[A-Za-z]{3}}/{target:[A-Za-z]{3}}", rateHandler.GetCacheStatus)
		r.Delete("/api/v1/cache/{base:[A-Za-z]{3}}/{target:[A-Za-z]{3}}", rateHandler.InvalidatePair)
		r.Delete("/api/v1/cache", rateHandler.InvalidateAll)
	})

	return router
}
