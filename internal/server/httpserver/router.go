package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yndnr/tablesync-go/internal/core/service"
	"github.com/yndnr/tablesync-go/internal/server/httpserver/handler"
	"github.com/yndnr/tablesync-go/internal/telemetry/logger"
	"github.com/yndnr/tablesync-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Table serves the table endpoints.
	Table *service.TableService

	// Logger for request logging.
	Logger logger.Logger

	// Metrics, when set, exposes /metrics and records per-route request
	// metrics.
	Metrics *metric.Registry

	// RateLimitRPS and RateLimitBurst throttle table endpoints per client
	// IP. Zero RPS disables throttling.
	RateLimitRPS   float64
	RateLimitBurst int

	// EnableAudit logs every table request.
	EnableAudit bool
}

// NewRouter creates the chi router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := handler.New(cfg.Table, log)

	r := chi.NewRouter()
	r.Use(RequestID(log), Recover(log))

	// Operational endpoints skip throttling and auditing.
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		if cfg.RateLimitRPS > 0 {
			burst := cfg.RateLimitBurst
			if burst < 1 {
				burst = 1
			}
			r.Use(RateLimit(cfg.RateLimitRPS, burst))
		}
		if cfg.Metrics != nil {
			r.Use(Metrics(cfg.Metrics))
		}
		if cfg.EnableAudit {
			r.Use(Audit(log))
		}

		r.Get("/table", h.State)
		r.Get("/table/changes", h.Changes)
		r.Post("/table/add", h.Add)
		r.Post("/table/remove", h.Remove)
	})

	return r
}
