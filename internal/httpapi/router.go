package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dwikikusuma/warung-pos/pkg/metrics"
)

type Handlers struct {
	Cart        *CartHandler
	Checkout    *CheckoutHandler
	Transaction *TransactionHandler
	Product     *ProductHandler
}

type RouterOptions struct {
	RequestTimeout time.Duration
	Metrics        *metrics.Metrics
	// Ready reports whether dependencies are usable; nil means always ready.
	Ready func() error
}

func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Ready != nil {
			if err := opts.Ready(); err != nil {
				respondError(w, http.StatusServiceUnavailable, "UNAVAILABLE", err.Error())
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", h.Cart.Routes)
		r.Post("/checkout", h.Checkout.Checkout)
		r.Route("/transactions", h.Transaction.Routes)
		r.Route("/products", h.Product.Routes)
	})

	return r
}
