// internal/site/service.go
//
// The orchestration service: every core-facing operation lives here.
//
// Context
// -------
// The HTTP layer hands this service validated primitives (user id, body
// payloads, uploaded-file URLs as opaque strings) and consumes its
// outputs (records, HTML strings, faults).  The service wires the
// normalizer, the allocator, the store, the state machine, the renderer,
// and the analytics recorder together, and owns the retry policy for slug
// conflicts: the UNIQUE KEY decides, the allocator proposes.
//
// Rendered pages are cached by slug + updated_at.  Rendering is
// deterministic, so a cached entry never goes stale; a record update
// changes the key.  Concurrent misses for the same key collapse through
// singleflight into one render.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/vitrine/internal/analytics"
	"github.com/yanizio/vitrine/internal/approval"
	"github.com/yanizio/vitrine/internal/business"
	"github.com/yanizio/vitrine/internal/cache"
	"github.com/yanizio/vitrine/internal/category"
	"github.com/yanizio/vitrine/internal/fault"
	"github.com/yanizio/vitrine/internal/metrics"
	"github.com/yanizio/vitrine/internal/render"
	"github.com/yanizio/vitrine/internal/slug"
	"github.com/yanizio/vitrine/internal/user"
)

// maxSlugRetries bounds the optimistic-attempt loop when concurrent
// registrations race for the same derived base.
const maxSlugRetries = 3

// Service exposes the core operations to the transport layer.
type Service struct {
	store *business.Store
	users *user.Store
	rec   *analytics.Recorder
	alloc *slug.Allocator
	pages *cache.Pages
	sfg   singleflight.Group
	v     *validator.Validate

	baseDomain string
	apiBaseURL string
}

// New wires the service.  pageCap sizes the rendered-page LRU.
func New(store *business.Store, users *user.Store, rec *analytics.Recorder,
	baseDomain, apiBaseURL string, pageCap int) *Service {
	return &Service{
		store:      store,
		users:      users,
		rec:        rec,
		alloc:      &slug.Allocator{Exists: store.SlugExists},
		pages:      cache.NewPages(pageCap),
		v:          validator.New(),
		baseDomain: baseDomain,
		apiBaseURL: apiBaseURL,
	}
}

// CreateInput is the registration payload.  Uploaded-file URLs arrive as
// opaque strings from the external upload service.
type CreateInput struct {
	BusinessName  string `validate:"required"`
	OwnerName     string
	Category      any    `validate:"required"`
	Address       string `validate:"required"`
	Description   string `validate:"required"`
	Mobile        string `validate:"required"`
	Email         string `validate:"required,email"`
	WhatsApp      string
	MapLink       string
	LogoURL       string
	Images        business.StringList
	YouTube       string
	Theme         string
	NavTagline    string
	FooterDesc    string
	Social        business.SocialLinks
	Services      business.ServiceList
	Offers        business.OfferList
	Hours         business.HoursMap
	Appointments  business.AppointmentSettings
	PreferredSlug string
}

// CreateBusiness registers a new business.  The record starts pending,
// with URLs derived once from the allocated slug.
func (s *Service) CreateBusiness(ctx context.Context, in CreateInput, requestingUserID int64) (*business.Record, error) {
	if err := s.validateCreate(in); err != nil {
		return nil, err
	}

	// Roles are re-resolved per request; credentials are never trusted.
	role, err := s.users.RoleOf(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	if role == user.RoleContentAdmin {
		blocking, err := s.store.FirstActiveForUser(ctx, requestingUserID)
		if err != nil {
			return nil, err
		}
		if err := approval.CheckCreateAllowed(role, blocking); err != nil {
			return nil, err
		}
	}

	// Friendly pre-check; the UNIQUE KEY still decides under races.
	if taken, err := s.store.EmailExists(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, fault.Conflictf(in.Email, "email already registered")
	}

	theme := in.Theme
	if theme == "" {
		theme = business.ThemeModern
	}

	// Optimistic attempt with bounded retry.  The pre-check inside
	// Allocate is an optimization; the UNIQUE KEY is the authority.
	var lastErr error
	for attempt := 0; attempt < maxSlugRetries; attempt++ {
		sl, err := s.alloc.Allocate(ctx, in.BusinessName, in.PreferredSlug)
		if err != nil {
			return nil, err
		}

		rec := &business.Record{
			Slug:            sl,
			UserID:          &requestingUserID,
			Name:            in.BusinessName,
			Owner:           in.OwnerName,
			Category:        category.Normalize(in.Category),
			Address:         in.Address,
			Descr:           in.Description,
			Mobile:          in.Mobile,
			Email:           in.Email,
			WhatsApp:        in.WhatsApp,
			MapLink:         in.MapLink,
			LogoURL:         in.LogoURL,
			Images:          in.Images,
			YouTube:         in.YouTube,
			Theme:           theme,
			NavTagline:      in.NavTagline,
			FooterDesc:      in.FooterDesc,
			Social:          in.Social,
			Services:        in.Services,
			Offers:          in.Offers,
			Hours:           in.Hours,
			Appointments:    in.Appointments,
			Status:          business.StatusPending,
			EditStatus:      business.EditNone,
			SubdomainURL:    fmt.Sprintf("https://%s.%s", sl, s.baseDomain),
			SubdirectoryURL: fmt.Sprintf("https://%s/%s", s.baseDomain, sl),
		}

		created, err := s.store.Create(ctx, rec)
		if err == nil {
			metrics.BusinessesCreatedTotal.Inc()
			return created, nil
		}

		// Retry only when the contested key is the slug we just picked;
		// an email conflict will not resolve by renaming the site.
		var fe *fault.Error
		if errors.As(err, &fe) && fe.Kind == fault.KindConflict && fe.Ref == sl {
			metrics.SlugConflictRetriesTotal.Inc()
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

// UpdateBusiness applies or parks an edit depending on the requester's
// current role.  Parked edits leave the visible record untouched.
func (s *Service) UpdateBusiness(ctx context.Context, id int64, in business.UpdateInput, requestingUserID int64) (*business.Record, error) {
	rec, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := s.users.RoleOf(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if err := authorize(rec, role, requestingUserID); err != nil {
		return nil, err
	}

	switch approval.DecideEdit(role, rec.Status) {
	case approval.ParkForReview:
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fault.Internalf(err, "serialize pending edit")
		}
		if err := s.store.SavePendingEdit(ctx, id, string(payload)); err != nil {
			return nil, err
		}
		rec.EditStatus = business.EditPending
		return rec, nil

	default: // ApplyNow
		updated, err := s.store.Update(ctx, id, in)
		if err != nil {
			return nil, err
		}
		if updated.EditStatus != business.EditNone {
			if err := s.store.ClearPendingEdit(ctx, id); err != nil {
				return nil, err
			}
			updated.EditStatus = business.EditNone
			updated.PendingEdit = nil
		}
		return updated, nil
	}
}

// ApprovePendingEdit replays the parked payload onto the record and
// resets the edit sub-machine.  Admin-only; the transport gates the role.
func (s *Service) ApprovePendingEdit(ctx context.Context, id int64) (*business.Record, error) {
	rec, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.EditStatus != business.EditPending || rec.PendingEdit == nil {
		return nil, fault.Validationf("editApprovalStatus",
			"business %d has no pending edit", id)
	}

	var in business.UpdateInput
	if err := json.Unmarshal([]byte(*rec.PendingEdit), &in); err != nil {
		return nil, fault.Internalf(err, "decode pending edit for business %d", id)
	}

	updated, err := s.store.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if err := s.store.ClearPendingEdit(ctx, id); err != nil {
		return nil, err
	}
	updated.EditStatus = business.EditNone
	updated.PendingEdit = nil
	return updated, nil
}

// RejectPendingEdit discards the parked payload.  The visible record was
// never touched, so there is nothing to roll back.
func (s *Service) RejectPendingEdit(ctx context.Context, id int64) error {
	rec, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.EditStatus != business.EditPending {
		return fault.Validationf("editApprovalStatus",
			"business %d has no pending edit", id)
	}
	return s.store.ClearPendingEdit(ctx, id)
}

// SetStatus performs an administrative visibility transition after
// validating it against the state machine.
func (s *Service) SetStatus(ctx context.Context, id int64, to business.Status) error {
	rec, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}
	next, err := approval.Transition(rec.Status, to)
	if err != nil {
		return err
	}
	return s.store.SetStatus(ctx, id, next)
}

// RenderedPage pairs the document with the id the transport needs for
// visit attribution.
type RenderedPage struct {
	BusinessID int64
	HTML       string
}

// RenderBySlug returns the complete HTML document for a publicly visible
// business.  Active is a promotion of approved and stays reachable.
func (s *Service) RenderBySlug(ctx context.Context, sl string) (*RenderedPage, error) {
	rec, err := s.store.BySlug(ctx, sl,
		business.StatusApproved, business.StatusActive)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s|%d", rec.Slug, rec.UpdatedAt.UnixNano())
	if html, ok := s.pages.Get(key); ok {
		metrics.PageCacheHitsTotal.Inc()
		return &RenderedPage{BusinessID: rec.ID, HTML: html}, nil
	}

	v, err, _ := s.sfg.Do(key, func() (any, error) {
		html := render.Page(rec, rec.Theme, s.apiBaseURL)
		metrics.PagesRenderedTotal.Inc()
		s.pages.Add(key, html)
		return html, nil
	})
	if err != nil {
		return nil, err
	}
	return &RenderedPage{BusinessID: rec.ID, HTML: v.(string)}, nil
}

// SlugAvailability is the payload behind checkSlugAvailability.
type SlugAvailability struct {
	Available   bool     `json:"available"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// CheckSlugAvailability reports whether a slug can be claimed, with up to
// three unreserved alternatives when it cannot.
func (s *Service) CheckSlugAvailability(ctx context.Context, sl string) (*SlugAvailability, error) {
	if !slug.Valid(sl) {
		suggestions, err := s.alloc.Suggest(ctx, sl, 3)
		if err != nil {
			return nil, err
		}
		return &SlugAvailability{Available: false, Suggestions: suggestions}, nil
	}

	taken, err := s.store.SlugExists(ctx, sl)
	if err != nil {
		return nil, err
	}
	if !taken {
		return &SlugAvailability{Available: true}, nil
	}
	suggestions, err := s.alloc.Suggest(ctx, sl, 3)
	if err != nil {
		return nil, err
	}
	return &SlugAvailability{Available: false, Suggestions: suggestions}, nil
}

// TrackEvent records an analytics event.  It has no error return by
// design; the recorder absorbs every failure.
func (s *Service) TrackEvent(ctx context.Context, businessID int64, eventType string, meta analytics.Meta) {
	s.rec.Record(ctx, businessID, eventType, meta)
}

// BusinessWithStats returns a record together with its counter snapshot
// for the owner dashboard.
func (s *Service) BusinessWithStats(ctx context.Context, id, requestingUserID int64) (*business.Record, *analytics.Stats, error) {
	rec, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	role, err := s.users.RoleOf(ctx, requestingUserID)
	if err != nil {
		return nil, nil, err
	}
	if err := authorize(rec, role, requestingUserID); err != nil {
		return nil, nil, err
	}
	stats, err := s.rec.GetStats(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return rec, stats, nil
}

// TimeStats proxies the windowed aggregation with the same owner gate.
func (s *Service) TimeStats(ctx context.Context, id, requestingUserID int64, period string) (*analytics.TimeStats, error) {
	rec, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := s.users.RoleOf(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if err := authorize(rec, role, requestingUserID); err != nil {
		return nil, err
	}
	return s.rec.GetTimeStats(ctx, id, period)
}

// authorize admits the owner and main_admin; everyone else is rejected.
func authorize(rec *business.Record, role user.Role, userID int64) error {
	if role == user.RoleMainAdmin {
		return nil
	}
	if rec.UserID != nil && *rec.UserID == userID {
		return nil
	}
	return fault.Authorizationf("user %d may not manage business %d", userID, rec.ID)
}

// validateCreate translates validator output into field-specific faults.
func (s *Service) validateCreate(in CreateInput) error {
	if err := s.v.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fault.Validationf(fieldName(f.Field()),
				"%s is required or malformed", fieldName(f.Field()))
		}
		return fault.Validationf("", "invalid payload")
	}
	return nil
}

// fieldName maps Go struct fields to their wire names.
func fieldName(goField string) string {
	switch goField {
	case "BusinessName":
		return "businessName"
	case "Category":
		return "category"
	case "Address":
		return "address"
	case "Description":
		return "description"
	case "Mobile":
		return "mobile"
	case "Email":
		return "email"
	default:
		return strings.ToLower(goField[:1]) + goField[1:]
	}
}
