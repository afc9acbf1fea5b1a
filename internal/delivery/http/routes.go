package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
)

// NewRouter wires the handler into a chi router. metrics may be nil.
func NewRouter(h *HTTPHandler, l logger.Logger, metricsPath string, metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logger.HTTPLogger(l))

	r.Get("/healthz", h.HealthCheck)

	r.Route("/queues", func(r chi.Router) {
		r.Get("/", h.ListSections)
		r.Post("/clear", h.EmptyQueue)
		r.Get("/average-wait-time", h.AverageWaitTimes)
		r.Get("/last-called", h.LastCalledTickets)

		r.Route("/{section}", func(r chi.Router) {
			r.Get("/tickets", h.ShowQueue)
			r.Post("/tickets", h.RequestTicket)
			r.Post("/tickets/next", h.CallNextTicket)
			r.Post("/call", h.CallNextTicket)
		})
	})

	r.Get("/tickets/status", h.TicketStatus)

	if metrics != nil {
		r.Method(http.MethodGet, metricsPath, metrics)
	}

	return r
}
