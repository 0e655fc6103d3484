package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/technopolitica/company-employees/internal/metrics"
	"github.com/technopolitica/company-employees/internal/paging"
	"github.com/technopolitica/company-employees/internal/service"
)

type Env struct {
	Companies      *service.Companies
	Employees      *service.Employees
	Limits         paging.Limits
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration
}

func addHostToRequestURL(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Host = r.Host
		if r.TLS != nil {
			r.URL.Scheme = "https"
		} else {
			r.URL.Scheme = "http"
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

func New(env *Env) *chi.Mux {
	if env.Metrics == nil {
		env.Metrics = metrics.New()
	}
	if env.RequestTimeout <= 0 {
		env.RequestTimeout = 15 * time.Second
	}

	router := chi.NewRouter()
	router.Use(hlog.NewHandler(env.Logger))
	router.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	router.Use(hlog.AccessHandler(accessLog))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/health"))
	router.Use(env.Metrics.Instrument)
	router.Use(middleware.Timeout(env.RequestTimeout))
	router.Use(addHostToRequestURL)

	router.Method(http.MethodGet, "/metrics", env.Metrics.Handler())
	router.Route("/api", func(r chi.Router) {
		r.Get("/", getRoot)
		r.Mount("/companies", NewCompaniesRouter(env))
	})

	return router
}
