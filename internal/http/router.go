package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/newgestao/drivercontrol/internal/http/auth"
	"github.com/newgestao/drivercontrol/internal/http/catalog"
	"github.com/newgestao/drivercontrol/internal/http/dashboard"
	"github.com/newgestao/drivercontrol/internal/http/expense"
	"github.com/newgestao/drivercontrol/internal/http/goal"
	"github.com/newgestao/drivercontrol/internal/http/importcsv"
	"github.com/newgestao/drivercontrol/internal/http/matching"
	"github.com/newgestao/drivercontrol/internal/http/recurring"
	"github.com/newgestao/drivercontrol/internal/http/revenue"
)

type Handlers struct {
	Revenues  *revenue.Handler
	Expenses  *expense.Handler
	Recurring *recurring.Handler
	Goals     *goal.Handler
	Dashboard *dashboard.Handler
	Catalog   *catalog.Handler
	Import    *importcsv.Handler
	Matching  *matching.Handler
}

func New(h Handlers, verifier *auth.Verifier, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(verifier.Middleware)

		r.Route("/revenues", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Revenues.Routes(r)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Expenses.Routes(r)
		})

		r.Route("/recurring-expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Recurring.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Goals.Routes(r)
		})

		r.Route("/dashboard", h.Dashboard.Routes)
		r.Route("/catalog", h.Catalog.Routes)
		r.Route("/import", h.Import.Routes)
		r.Route("/matching", h.Matching.Routes)
	})

	return router
}
