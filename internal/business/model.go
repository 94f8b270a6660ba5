// internal/business/model.go
//
// Business record and its JSON-encoded substructures.
//
// Context
// -------
// One row in `businesses` describes everything needed to render a public
// micro-site: identity (id, slug, owner), descriptive fields, presentation
// fields, and several independently JSON-encoded substructures stored in
// JSON columns.  The substructure types implement driver.Valuer and
// sql.Scanner so sqlx round-trips them exactly.
//
// Lifecycle state lives in two columns.  `status` governs public
// visibility; `edit_approval_status` only gates subsequent edits to an
// already-approved listing (see internal/approval).
//
// Notes
// -----
// • Slug is immutable once assigned, and never reused after deletion.
// • Oxford commas, two spaces after periods.
package business

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yanizio/vitrine/internal/category"
)

// Status values for the primary visibility machine.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusActive   Status = "active"
)

// EditStatus values for the edit-approval sub-machine.
type EditStatus string

const (
	EditNone     EditStatus = "none"
	EditPending  EditStatus = "pending"
	EditApproved EditStatus = "approved"
	EditRejected EditStatus = "rejected"
)

// Themes accepted by the renderer.  Unknown values fall back to modern at
// render time; the store still persists whatever enum value it was given.
const (
	ThemeModern  = "modern"
	ThemeClassic = "classic"
	ThemeMinimal = "minimal"
)

// Service is one offered service shown on the site and exported to the
// JSON-LD offer catalog.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Featured    bool   `json:"featured"`
}

// SpecialOffer is a time-limited promotion.
type SpecialOffer struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ExpiryDate  string `json:"expiryDate"`
}

// DaySchedule holds one weekday's opening window.
type DaySchedule struct {
	Open  bool   `json:"open"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// AppointmentSettings controls the booking form section.
type AppointmentSettings struct {
	Enabled     bool   `json:"enabled"`
	SlotMinutes int    `json:"slotMinutes"`
	DaysAhead   int    `json:"daysAhead"`
	Note        string `json:"note"`
}

// SocialLinks is a fixed-shape record; absent platforms stay empty.
type SocialLinks struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Website   string `json:"website"`
}

// JSON column wrappers.  Each stores as a serialized JSON document and
// must round-trip exactly through one store/retrieve cycle.

type StringList []string
type ServiceList []Service
type OfferList []SpecialOffer
type HoursMap map[string]DaySchedule

func (v StringList) Value() (driver.Value, error)  { return jsonValue(v) }
func (v *StringList) Scan(src any) error           { return jsonScan(src, v) }
func (v ServiceList) Value() (driver.Value, error) { return jsonValue(v) }
func (v *ServiceList) Scan(src any) error          { return jsonScan(src, v) }
func (v OfferList) Value() (driver.Value, error)   { return jsonValue(v) }
func (v *OfferList) Scan(src any) error            { return jsonScan(src, v) }
func (v HoursMap) Value() (driver.Value, error)    { return jsonValue(v) }
func (v *HoursMap) Scan(src any) error             { return jsonScan(src, v) }

func (v AppointmentSettings) Value() (driver.Value, error) { return jsonValue(v) }
func (v *AppointmentSettings) Scan(src any) error          { return jsonScan(src, v) }
func (v SocialLinks) Value() (driver.Value, error)         { return jsonValue(v) }
func (v *SocialLinks) Scan(src any) error                  { return jsonScan(src, v) }

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src, dst any) error {
	switch s := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(s) == 0 {
			return nil
		}
		return json.Unmarshal(s, dst)
	case string:
		if s == "" {
			return nil
		}
		return json.Unmarshal([]byte(s), dst)
	default:
		return fmt.Errorf("business: cannot scan %T into JSON column", src)
	}
}

// Record mirrors one row in the `businesses` table.
type Record struct {
	ID       int64             `db:"id" json:"id"`
	Slug     string            `db:"slug" json:"slug"`
	UserID   *int64            `db:"user_id" json:"userId"`
	Name     string            `db:"business_name" json:"businessName"`
	Owner    string            `db:"owner_name" json:"ownerName"`
	Category category.Category `db:"category" json:"category"`
	Address  string            `db:"address" json:"address"`
	Descr    string            `db:"description" json:"description"`
	Mobile   string            `db:"mobile" json:"mobile"`
	Email    string            `db:"email" json:"email"`
	WhatsApp string            `db:"whatsapp" json:"whatsapp"`
	MapLink  string            `db:"map_link" json:"mapLink"`

	LogoURL    string      `db:"logo_url" json:"logoUrl"`
	Images     StringList  `db:"images_url" json:"imagesUrl"`
	YouTube    string      `db:"youtube_video" json:"youtubeVideo"`
	Theme      string      `db:"theme" json:"theme"`
	NavTagline string      `db:"navbar_tagline" json:"navbarTagline"`
	FooterDesc string      `db:"footer_description" json:"footerDescription"`
	Social     SocialLinks `db:"social_links" json:"socialLinks"`

	Services     ServiceList         `db:"services" json:"services"`
	Offers       OfferList           `db:"special_offers" json:"specialOffers"`
	Hours        HoursMap            `db:"business_hours" json:"businessHours"`
	Appointments AppointmentSettings `db:"appointment_settings" json:"appointmentSettings"`

	Status     Status     `db:"status" json:"status"`
	EditStatus EditStatus `db:"edit_approval_status" json:"editApprovalStatus"`
	IsPremium  bool       `db:"is_premium" json:"isPremium"`

	// Parked content_admin edit awaiting review.  NULL when none pending.
	PendingEdit *string `db:"pending_edit" json:"-"`

	// Computed once at creation from slug + base domain, stored for
	// stability even if the base domain later changes.
	SubdomainURL    string `db:"subdomain_url" json:"subdomainUrl"`
	SubdirectoryURL string `db:"subdirectory_url" json:"subdirectoryUrl"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
