// internal/web/router.go
//
// HTTP transport for Vitrine.
//
// Context
// -------
// The transport is deliberately thin: it decodes payloads, resolves the
// requesting user, calls the service, and translates faults into status
// codes.  No business rule lives here.
//
// Identity
// --------
// Authentication is handled upstream (gateway or reverse proxy).  The
// verified user id arrives in the `X-User-ID` header; role checks are
// re-resolved from the database on every request, never trusted from
// the client.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/vitrine/internal/site"
	"github.com/yanizio/vitrine/internal/user"
)

// Handler bundles the service and its collaborators for the route tree.
type Handler struct {
	svc   *site.Service
	users *user.Store
	log   *zap.SugaredLogger
}

// New returns a Handler ready to be mounted.
func New(svc *site.Service, users *user.Store, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, users: users, log: log}
}

// Routes builds the full route tree, public pages and API alike.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Post("/businesses", h.createBusiness)
		r.Put("/businesses/{id}", h.updateBusiness)
		r.Get("/businesses/{id}/stats", h.businessStats)
		r.Get("/businesses/{id}/stats/timeline", h.businessTimeline)
		r.Post("/businesses/{id}/status", h.setStatus)
		r.Post("/businesses/{id}/pending-edit/approve", h.approvePendingEdit)
		r.Post("/businesses/{id}/pending-edit/reject", h.rejectPendingEdit)
		r.Get("/slug-availability", h.slugAvailability)
		r.Post("/track", h.track)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Everything else is a micro-site page.
	r.Get("/{slug}", h.page)

	return r
}
