package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"daycare-dispatch/internal/http/handlers"
	appmw "daycare-dispatch/internal/http/middleware"
	"daycare-dispatch/internal/http/middleware/ratelimit"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/metrics"
)

const requestTimeout = 5 * time.Second

// Handlers groups the resource handlers mounted by the router.
type Handlers struct {
	Base        *handlers.Handlers
	Assignments *handlers.AssignmentHandler
	Agents      *handlers.AgentHandler
	Finance     *handlers.FinanceHandler
	Settings    *handlers.SettingsHandler
}

// Options carries the cross-cutting pieces of the HTTP stack. Any field may be nil.
type Options struct {
	Logger    logx.Logger
	Metrics   *metrics.HTTP
	RateLimit *ratelimit.Middleware
	Gatherer  prometheus.Gatherer
}

// New constructs a chi-based http.Handler with base middleware and routes.
// Everything except ping, healthcheck and metrics requires an actor.
func New(h Handlers, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logx.Nop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmw.Observability(logger, opts.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/ping", h.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.Base.HealthcheckHead))
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	r.NotFound(http.HandlerFunc(h.Base.NotFound))

	r.Group(func(r chi.Router) {
		r.Use(appmw.Actor(logger))
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit.Handler())
		}

		r.Route("/assignments", func(r chi.Router) {
			a := h.Assignments
			r.Post("/", a.Create)
			r.Get("/", a.List)
			r.Get("/available", a.Available)
			r.Get("/mine", a.Mine)
			r.Post("/expire-overdue", a.ExpireOverdue)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", a.Get)
				r.Get("/suggestions", a.Suggestions)
				r.Get("/tracking", a.Tracking)
				r.Post("/auto-assign", a.AutoAssign)
				r.Post("/assign-manual", a.AssignManual)
				r.Put("/accept", a.Accept)
				r.Put("/reject", a.Reject)
				r.Put("/pickup", a.Pickup)
				r.Put("/location", a.Location)
				r.Put("/deliver", a.Deliver)
				r.Post("/fail", a.Fail)
				r.Post("/settle", a.Settle)
			})
		})

		r.Route("/agents", func(r chi.Router) {
			ag := h.Agents
			r.Post("/", ag.Create)
			r.Get("/", ag.List)
			r.Get("/{id}", ag.Get)
			r.Patch("/{id}", ag.Update)
			r.Get("/{id}/wallet", ag.Wallet)
			r.Get("/{id}/wallet/reconcile", ag.Reconcile)
			r.Post("/{id}/withdrawals", ag.Withdraw)
		})

		f := h.Finance
		r.Post("/orders/{id}/commission", f.RecordCommission)
		r.Get("/orders/{id}/commission", f.Commission)
		r.Get("/commissions/summary", f.Summary)
		r.Get("/vendors/{id}/payouts", f.VendorPayouts)
		r.Post("/payouts/process-due", f.ProcessDue)
		r.Post("/payouts/{id}/complete", f.CompletePayout)
		r.Post("/payouts/{id}/fail", f.FailPayout)

		r.Get("/settings", h.Settings.Get)
		r.Put("/settings", h.Settings.Update)
	})

	return r
}
