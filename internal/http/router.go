package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/assetbook/internal/http/ledger"
	"github.com/MrJamesThe3rd/assetbook/internal/http/record"
	"github.com/MrJamesThe3rd/assetbook/internal/http/respond"
	"github.com/MrJamesThe3rd/assetbook/internal/http/stats"
)

func New(
	allowedOrigins []string,
	ledgersV1 *ledger.Handler,
	recordsV1 *record.Handler,
	statsV1 *stats.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(CorrelationID)
	router.Use(RequestLogger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", CorrelationIDHeader},
		ExposedHeaders: []string{CorrelationIDHeader},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/ledgers", ledgersV1.Routes)
		r.Route("/records", recordsV1.Routes)
		r.Group(statsV1.Routes)
	})

	return router
}
