package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// RouterOptions configures auth and rate limiting for NewRouter.
type RouterOptions struct {
	Token          string
	RateLimit      int
	RateLimitEvery time.Duration
}

// NewRouter builds the chi router.
// Health is unauthenticated; weather and condition routes sit behind bearer auth when a token is set.
func NewRouter(handlers *Handlers, opts RouterOptions, log *slog.Logger) *chi.Mux {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 60
	}
	if opts.RateLimitEvery <= 0 {
		opts.RateLimitEvery = time.Minute
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httprate.LimitByIP(opts.RateLimit, opts.RateLimitEvery))

	r.Get("/api/v1/health", HealthHandlerFunc(log))

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(opts.Token))
		r.Get("/api/v1/weather", handlers.GetWeather)
		r.Get("/api/v1/conditions/{code}", handlers.GetCondition)
	})

	return r
}

var _ http.Handler = (*chi.Mux)(nil)
