// internal/web/page.go
//
// Public micro-site pages.  One route, one lookup, one cached render.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/vitrine/internal/analytics"
	"github.com/yanizio/vitrine/internal/fault"
)

// page serves GET /{slug}.  Anything not publicly visible is a plain
// 404; pending and rejected records must be indistinguishable from
// absent ones.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	sl := chi.URLParam(r, "slug")

	pg, err := h.svc.RenderBySlug(r.Context(), sl)
	if err != nil {
		if fault.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		h.log.Errorw("page render failed", "slug", sl, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// Server-side visitor event; clicks arrive later via the beacon.
	// The recorder absorbs failures, the page is already on its way.
	h.svc.TrackEvent(r.Context(), pg.BusinessID, analytics.EventVisitor, analytics.Meta{
		UserAgent: r.UserAgent(),
		IP:        clientIP(r),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(pg.HTML))
}
