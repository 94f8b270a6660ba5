// internal/business/store.go
//
// Persistent CRUD and query operations over business records (sqlx).
//
// Context
// -------
// The store owns the last line of defense for the category invariant:
// every incoming category value is routed through category.Normalize
// before it is written, regardless of which code path produced it.  The
// UNIQUE KEYs on slug and email are the authority for uniqueness; a
// duplicate-key rejection surfaces as fault.Conflict so the allocator can
// retry with a fresh candidate.  An enum or check rejection on category or
// status should be unreachable and is surfaced as fault.Internal.
//
// Update applies partial semantics: a nil field in UpdateInput keeps the
// previously stored value.  JSON substructures replace wholesale when
// present.
//
// Notes
// -----
// • All queries use `?` placeholders (MySQL wire protocol).
// • Oxford commas, two spaces after periods.
package business

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/vitrine/internal/category"
	"github.com/yanizio/vitrine/internal/fault"
)

// selectCols is the full column list in stable order, shared by every
// SELECT so rows always scan into Record the same way.
const selectCols = `id, slug, user_id, business_name, owner_name, category,
       address, description, mobile, email, whatsapp, map_link,
       logo_url, images_url, youtube_video, theme, navbar_tagline,
       footer_description, social_links, services, special_offers,
       business_hours, appointment_settings, status, edit_approval_status,
       is_premium, pending_edit, subdomain_url, subdirectory_url,
       created_at, updated_at`

// Store wraps the shared connection pool.
type Store struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

// NewStore builds a Store.  log may be nil; zap's global sugar is used
// then.
func NewStore(db *sqlx.DB, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.S()
	}
	return &Store{db: db, log: log}
}

// UpdateInput carries partial update semantics.  Nil means "keep the
// stored value."  Category is any because clients still send both bare
// strings and object wrappers; it is normalized before the write.  The
// struct is JSON round-trippable so a content_admin edit can be parked
// verbatim in pending_edit and replayed on approval.
type UpdateInput struct {
	Name         *string              `json:"businessName,omitempty"`
	Owner        *string              `json:"ownerName,omitempty"`
	Category     any                  `json:"category,omitempty"`
	Address      *string              `json:"address,omitempty"`
	Descr        *string              `json:"description,omitempty"`
	Mobile       *string              `json:"mobile,omitempty"`
	Email        *string              `json:"email,omitempty"`
	WhatsApp     *string              `json:"whatsapp,omitempty"`
	MapLink      *string              `json:"mapLink,omitempty"`
	LogoURL      *string              `json:"logoUrl,omitempty"`
	Images       *StringList          `json:"imagesUrl,omitempty"`
	YouTube      *string              `json:"youtubeVideo,omitempty"`
	Theme        *string              `json:"theme,omitempty"`
	NavTagline   *string              `json:"navbarTagline,omitempty"`
	FooterDesc   *string              `json:"footerDescription,omitempty"`
	Social       *SocialLinks         `json:"socialLinks,omitempty"`
	Services     *ServiceList         `json:"services,omitempty"`
	Offers       *OfferList           `json:"specialOffers,omitempty"`
	Hours        *HoursMap            `json:"businessHours,omitempty"`
	Appointments *AppointmentSettings `json:"appointmentSettings,omitempty"`
	IsPremium    *bool                `json:"isPremium,omitempty"`
}

// Create inserts rec as a single atomic insert and returns it with the
// assigned id.  The category invariant is enforced here even if a caller
// already normalized.
func (s *Store) Create(ctx context.Context, rec *Record) (*Record, error) {
	rec.Category = category.Normalize(rec.Category)
	now := time.Now().UTC().Truncate(time.Second)
	rec.CreatedAt, rec.UpdatedAt = now, now
	if rec.Status == "" {
		rec.Status = StatusPending
	}
	if rec.EditStatus == "" {
		rec.EditStatus = EditNone
	}

	const q = `
        INSERT INTO businesses (
            slug, user_id, business_name, owner_name, category,
            address, description, mobile, email, whatsapp, map_link,
            logo_url, images_url, youtube_video, theme, navbar_tagline,
            footer_description, social_links, services, special_offers,
            business_hours, appointment_settings, status,
            edit_approval_status, is_premium, subdomain_url,
            subdirectory_url, created_at, updated_at
        ) VALUES (
            :slug, :user_id, :business_name, :owner_name, :category,
            :address, :description, :mobile, :email, :whatsapp, :map_link,
            :logo_url, :images_url, :youtube_video, :theme, :navbar_tagline,
            :footer_description, :social_links, :services, :special_offers,
            :business_hours, :appointment_settings, :status,
            :edit_approval_status, :is_premium, :subdomain_url,
            :subdirectory_url, :created_at, :updated_at
        )`

	res, err := s.db.NamedExecContext(ctx, q, rec)
	if err != nil {
		return nil, s.mapWriteError(err, rec.Slug, rec.Email)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fault.Internalf(err, "read inserted business id")
	}
	rec.ID = id
	return rec, nil
}

// Update merges in over the stored row and writes the result as one
// atomic update.  Omitted fields keep their previous values.  Slug,
// status, and the URL columns are never touched here.
func (s *Store) Update(ctx context.Context, id int64, in UpdateInput) (*Record, error) {
	cur, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merge(cur, in)
	cur.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	const q = `
        UPDATE businesses SET
            business_name = :business_name, owner_name = :owner_name,
            category = :category, address = :address,
            description = :description, mobile = :mobile, email = :email,
            whatsapp = :whatsapp, map_link = :map_link, logo_url = :logo_url,
            images_url = :images_url, youtube_video = :youtube_video,
            theme = :theme, navbar_tagline = :navbar_tagline,
            footer_description = :footer_description,
            social_links = :social_links, services = :services,
            special_offers = :special_offers, business_hours = :business_hours,
            appointment_settings = :appointment_settings,
            is_premium = :is_premium, updated_at = :updated_at
        WHERE id = :id`

	if _, err := s.db.NamedExecContext(ctx, q, cur); err != nil {
		return nil, s.mapWriteError(err, cur.Slug, cur.Email)
	}
	return cur, nil
}

// merge copies present UpdateInput fields onto rec.  Category passes
// through the normalizer; everything else is a plain overwrite.
func merge(rec *Record, in UpdateInput) {
	if in.Name != nil {
		rec.Name = *in.Name
	}
	if in.Owner != nil {
		rec.Owner = *in.Owner
	}
	if in.Category != nil {
		rec.Category = category.Normalize(in.Category)
	}
	if in.Address != nil {
		rec.Address = *in.Address
	}
	if in.Descr != nil {
		rec.Descr = *in.Descr
	}
	if in.Mobile != nil {
		rec.Mobile = *in.Mobile
	}
	if in.Email != nil {
		rec.Email = *in.Email
	}
	if in.WhatsApp != nil {
		rec.WhatsApp = *in.WhatsApp
	}
	if in.MapLink != nil {
		rec.MapLink = *in.MapLink
	}
	if in.LogoURL != nil {
		rec.LogoURL = *in.LogoURL
	}
	if in.Images != nil {
		rec.Images = *in.Images
	}
	if in.YouTube != nil {
		rec.YouTube = *in.YouTube
	}
	if in.Theme != nil {
		rec.Theme = *in.Theme
	}
	if in.NavTagline != nil {
		rec.NavTagline = *in.NavTagline
	}
	if in.FooterDesc != nil {
		rec.FooterDesc = *in.FooterDesc
	}
	if in.Social != nil {
		rec.Social = *in.Social
	}
	if in.Services != nil {
		rec.Services = *in.Services
	}
	if in.Offers != nil {
		rec.Offers = *in.Offers
	}
	if in.Hours != nil {
		rec.Hours = *in.Hours
	}
	if in.Appointments != nil {
		rec.Appointments = *in.Appointments
	}
	if in.IsPremium != nil {
		rec.IsPremium = *in.IsPremium
	}
}

// ByID fetches one record or fault.NotFound.
func (s *Store) ByID(ctx context.Context, id int64) (*Record, error) {
	const q = `SELECT ` + selectCols + ` FROM businesses WHERE id = ? LIMIT 1`
	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.NotFoundf("business %d not found", id)
		}
		return nil, fault.Internalf(err, "load business %d", id)
	}
	return &rec, nil
}

// BySlug fetches one record by slug.  A non-empty statuses list restricts
// the lookup, so public page serving can pass [approved, active] while
// authenticated edit flows pass nothing and see any status.
func (s *Store) BySlug(ctx context.Context, sl string, statuses ...Status) (*Record, error) {
	q := `SELECT ` + selectCols + ` FROM businesses WHERE slug = ?`
	args := []any{sl}
	if len(statuses) > 0 {
		q += ` AND status IN (` + placeholders(len(statuses)) + `)`
		for _, st := range statuses {
			args = append(args, string(st))
		}
	}
	q += ` LIMIT 1`

	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.NotFoundf("business %q not found", sl)
		}
		return nil, fault.Internalf(err, "load business %q", sl)
	}
	return &rec, nil
}

// ByUser returns every business owned by userID, newest first.
func (s *Store) ByUser(ctx context.Context, userID int64) ([]Record, error) {
	const q = `SELECT ` + selectCols + ` FROM businesses
                WHERE user_id = ? ORDER BY created_at DESC`
	var rows []Record
	if err := s.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, fault.Internalf(err, "load businesses for user %d", userID)
	}
	return rows, nil
}

// FirstActiveForUser returns the user's first business whose status is
// approved or pending, or nil when there is none.  Used by the creation
// cardinality check for content_admin accounts.
func (s *Store) FirstActiveForUser(ctx context.Context, userID int64) (*Record, error) {
	const q = `SELECT ` + selectCols + ` FROM businesses
                WHERE user_id = ? AND status IN ('approved', 'pending')
                ORDER BY created_at ASC LIMIT 1`
	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fault.Internalf(err, "count businesses for user %d", userID)
	}
	return &rec, nil
}

// All returns businesses ordered premium first, then by recency.  A
// non-empty statuses list filters the result.
func (s *Store) All(ctx context.Context, statuses ...Status) ([]Record, error) {
	q := `SELECT ` + selectCols + ` FROM businesses`
	var args []any
	if len(statuses) > 0 {
		q += ` WHERE status IN (` + placeholders(len(statuses)) + `)`
		for _, st := range statuses {
			args = append(args, string(st))
		}
	}
	q += ` ORDER BY is_premium DESC, created_at DESC`

	var rows []Record
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fault.Internalf(err, "list businesses")
	}
	return rows, nil
}

// SlugExists answers the allocator's pre-check.  The UNIQUE KEY remains
// the source of truth under concurrent registrations.
func (s *Store) SlugExists(ctx context.Context, sl string) (bool, error) {
	const q = `SELECT 1 FROM businesses WHERE slug = ? LIMIT 1`
	var one int
	err := s.db.GetContext(ctx, &one, q, sl)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fault.Internalf(err, "check slug %q", sl)
	}
	return true, nil
}

// EmailExists reports whether an account email is already attached to a
// business.  Advisory, like SlugExists; the UNIQUE KEY decides.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	const q = `SELECT 1 FROM businesses WHERE email = ? LIMIT 1`
	var one int
	err := s.db.GetContext(ctx, &one, q, email)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fault.Internalf(err, "check email %q", email)
	}
	return true, nil
}

// SetStatus writes a new visibility status.  Transition legality is the
// state machine's job; this is the raw write.
func (s *Store) SetStatus(ctx context.Context, id int64, st Status) error {
	const q = `UPDATE businesses SET status = ?, updated_at = ? WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q, string(st), time.Now().UTC().Truncate(time.Second), id)
	if err != nil {
		return s.mapWriteError(err, "", "")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("business %d not found", id)
	}
	return nil
}

// SavePendingEdit parks a serialized edit payload and flips the edit
// sub-machine to pending, leaving every visible column untouched.
func (s *Store) SavePendingEdit(ctx context.Context, id int64, payload string) error {
	const q = `UPDATE businesses
                  SET pending_edit = ?, edit_approval_status = 'pending',
                      updated_at = ?
                WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q, payload, time.Now().UTC().Truncate(time.Second), id)
	if err != nil {
		return s.mapWriteError(err, "", "")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("business %d not found", id)
	}
	return nil
}

// ClearPendingEdit resets the edit sub-machine to none and drops the
// parked payload.  Called after an admin approves or rejects the edit.
func (s *Store) ClearPendingEdit(ctx context.Context, id int64) error {
	const q = `UPDATE businesses
                  SET pending_edit = NULL, edit_approval_status = 'none',
                      updated_at = ?
                WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q, time.Now().UTC().Truncate(time.Second), id)
	if err != nil {
		return s.mapWriteError(err, "", "")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("business %d not found", id)
	}
	return nil
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// mapWriteError classifies a MySQL write rejection.
//
//	1062             – duplicate key → Conflict (slug or email).
//	1265, 3819, 1452 – enum, check, or FK violation → Internal, because
//	                   normalization upstream should make these
//	                   unreachable.
func (s *Store) mapWriteError(err error, slug, email string) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return fault.Internalf(err, "business write")
	}
	switch me.Number {
	case 1062:
		ref, field := slug, "slug"
		if strings.Contains(me.Message, "email") {
			ref, field = email, "email"
		}
		return fault.Conflictf(ref, "%s already exists", field)
	case 1265, 3819, 1452:
		s.log.Errorw("constraint violation reached the store",
			"mysql_errno", me.Number, "detail", me.Message)
		return fault.Internalf(err, "invariant violation at storage layer")
	default:
		return fault.Internalf(err, "business write")
	}
}
