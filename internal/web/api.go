// internal/web/api.go
//
// JSON endpoints: registration, edits, moderation, availability, stats,
// and the analytics beacon.
package web

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/vitrine/internal/analytics"
	"github.com/yanizio/vitrine/internal/business"
	"github.com/yanizio/vitrine/internal/fault"
	"github.com/yanizio/vitrine/internal/site"
	"github.com/yanizio/vitrine/internal/user"
)

// maxBodyBytes caps JSON payloads; gallery URL lists are the largest
// legitimate field by far.
const maxBodyBytes = 1 << 20

/*──────────────────────────── payloads ────────────────────────────────────*/

// createRequest is the wire shape of a registration.  Uploaded-file URLs
// arrive as opaque strings from the external upload service.
type createRequest struct {
	BusinessName  string                       `json:"businessName"`
	OwnerName     string                       `json:"ownerName"`
	Category      any                          `json:"category"`
	Address       string                       `json:"address"`
	Description   string                       `json:"description"`
	Mobile        string                       `json:"mobile"`
	Email         string                       `json:"email"`
	WhatsApp      string                       `json:"whatsappNumber"`
	MapLink       string                       `json:"mapLink"`
	LogoURL       string                       `json:"logoUrl"`
	Images        business.StringList          `json:"images"`
	YouTube       string                       `json:"youtubeVideo"`
	Theme         string                       `json:"theme"`
	NavTagline    string                       `json:"navTagline"`
	FooterDesc    string                       `json:"footerDescription"`
	Social        business.SocialLinks         `json:"socialLinks"`
	Services      business.ServiceList         `json:"services"`
	Offers        business.OfferList           `json:"specialOffers"`
	Hours         business.HoursMap            `json:"businessHours"`
	Appointments  business.AppointmentSettings `json:"appointmentSettings"`
	PreferredSlug string                       `json:"preferredSlug"`
}

func (cr createRequest) toInput() site.CreateInput {
	return site.CreateInput{
		BusinessName:  cr.BusinessName,
		OwnerName:     cr.OwnerName,
		Category:      cr.Category,
		Address:       cr.Address,
		Description:   cr.Description,
		Mobile:        cr.Mobile,
		Email:         cr.Email,
		WhatsApp:      cr.WhatsApp,
		MapLink:       cr.MapLink,
		LogoURL:       cr.LogoURL,
		Images:        cr.Images,
		YouTube:       cr.YouTube,
		Theme:         cr.Theme,
		NavTagline:    cr.NavTagline,
		FooterDesc:    cr.FooterDesc,
		Social:        cr.Social,
		Services:      cr.Services,
		Offers:        cr.Offers,
		Hours:         cr.Hours,
		Appointments:  cr.Appointments,
		PreferredSlug: cr.PreferredSlug,
	}
}

type trackRequest struct {
	BusinessID int64  `json:"businessId"`
	EventType  string `json:"eventType"`
}

type statusRequest struct {
	Status string `json:"status"`
}

/*──────────────────────────── handlers ────────────────────────────────────*/

func (h *Handler) createBusiness(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requester(w, r)
	if !ok {
		return
	}

	var req createRequest
	if !h.decode(w, r, &req) {
		return
	}

	rec, err := h.svc.CreateBusiness(r.Context(), req.toInput(), uid)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) updateBusiness(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requester(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var in business.UpdateInput
	if !h.decode(w, r, &in) {
		return
	}

	rec, err := h.svc.UpdateBusiness(r.Context(), id, in, uid)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) businessStats(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requester(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rec, stats, err := h.svc.BusinessWithStats(r.Context(), id, uid)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"business": rec,
		"stats":    stats,
	})
}

func (h *Handler) businessTimeline(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.requester(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = analytics.PeriodWeek
	}

	ts, err := h.svc.TimeStats(r.Context(), id, uid, period)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ts)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.SetStatus(r.Context(), id, business.Status(req.Status)); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

func (h *Handler) approvePendingEdit(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.ApprovePendingEdit(r.Context(), id)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) rejectPendingEdit(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.RejectPendingEdit(r.Context(), id); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"id": id, "editApprovalStatus": "none"})
}

func (h *Handler) slugAvailability(w http.ResponseWriter, r *http.Request) {
	sl := r.URL.Query().Get("slug")
	if sl == "" {
		h.writeErr(w, fault.Validationf("slug", "slug query parameter is required"))
		return
	}

	avail, err := h.svc.CheckSlugAvailability(r.Context(), sl)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, avail)
}

// track accepts beacon posts from rendered pages.  It always reports
// success; a lost event must never surface to a visitor.
func (h *Handler) track(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err == nil {
		h.svc.TrackEvent(r.Context(), req.BusinessID, req.EventType, analytics.Meta{
			UserAgent: r.UserAgent(),
			IP:        clientIP(r),
		})
	}
	h.writeJSON(w, http.StatusAccepted, map[string]any{"success": true})
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// requester extracts the verified user id injected upstream.
func (h *Handler) requester(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.Header.Get("X-User-ID")
	uid, err := strconv.ParseInt(raw, 10, 64)
	if raw == "" || err != nil || uid <= 0 {
		h.writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": "missing or malformed user identity",
		})
		return 0, false
	}
	return uid, true
}

// requireAdmin admits main_admin only.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	uid, ok := h.requester(w, r)
	if !ok {
		return false
	}
	role, err := h.users.RoleOf(r.Context(), uid)
	if err != nil {
		h.writeErr(w, err)
		return false
	}
	if role != user.RoleMainAdmin {
		h.writeErr(w, fault.Authorizationf("user %d is not an administrator", uid))
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeErr(w, fault.Validationf("id", "business id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		h.writeErr(w, fault.Validationf("", "malformed JSON payload"))
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorw("response encode failed", "err", err)
	}
}

// writeErr translates a fault into a JSON error payload.  Internal
// causes are logged, never surfaced.
func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	status := fault.HTTPStatus(err)

	body := map[string]any{"error": err.Error()}
	var fe *fault.Error
	if errors.As(err, &fe) {
		if fe.Field != "" {
			body["field"] = fe.Field
		}
		if fe.Ref != "" {
			body["ref"] = fe.Ref
		}
		if fe.Kind == fault.KindInternal {
			body["error"] = "internal error"
		}
	}
	if status == http.StatusInternalServerError {
		h.log.Errorw("request failed", "err", err)
	}

	h.writeJSON(w, status, body)
}

// clientIP prefers the first X-Forwarded-For hop, then RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
