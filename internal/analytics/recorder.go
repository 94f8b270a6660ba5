// internal/analytics/recorder.go
//
// Append-only event log plus aggregate counters, keyed by business id.
//
// Context
// -------
// Analytics must never cause the consuming request to fail.  Record
// therefore returns nothing: every internal failure is logged, counted on
// the analytics_errors_total collector, and absorbed.  For counter-backed
// event types the counter is bumped first and the event row is appended
// only after that succeeds, so a failed increment never strands an
// orphaned log row.  Event types outside the counter set go straight to
// the log.
//
//	analytics_event   (id, business_id, event_type, device, country, created_at)
//	analytics_counter (business_id PK, visitor_count, call_clicks,
//	                   whatsapp_clicks, gallery_views, map_clicks)
//
// Events are enriched best-effort with a coarse device class from the
// User-Agent header and, when a GeoLite2 database is configured, the
// visitor's country code.  Bot traffic is skipped outright.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package analytics

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/yanizio/vitrine/internal/metrics"
	"github.com/yanizio/vitrine/internal/ua"
)

// Event types with a dedicated counter column.  Every event lands in the
// log; only these five also bump an aggregate.
const (
	EventVisitor       = "visitor"
	EventCallClick     = "call_click"
	EventWhatsAppClick = "whatsapp_click"
	EventGalleryView   = "gallery_view"
	EventMapClick      = "map_click"
)

// counterCols maps an event type to its counter column.  The column names
// are fixed identifiers, never user input.
var counterCols = map[string]string{
	EventVisitor:       "visitor_count",
	EventCallClick:     "call_clicks",
	EventWhatsAppClick: "whatsapp_clicks",
	EventGalleryView:   "gallery_views",
	EventMapClick:      "map_clicks",
}

// Meta carries the request attributes used for enrichment.  All fields
// are optional.
type Meta struct {
	UserAgent string
	IP        string
}

// Recorder owns the analytics writes.  geo may be nil, in which case
// country enrichment is skipped.
type Recorder struct {
	db  *sqlx.DB
	geo *geoip2.Reader
	log *zap.SugaredLogger
}

// NewRecorder builds a Recorder.  log may be nil; zap's global sugar is
// used then.
func NewRecorder(db *sqlx.DB, geo *geoip2.Reader, log *zap.SugaredLogger) *Recorder {
	if log == nil {
		log = zap.S()
	}
	return &Recorder{db: db, geo: geo, log: log}
}

// Record bumps the matching counter (when the type has one) and appends
// one event row.  It never fails observably: bot traffic and write
// errors are absorbed here.  The log accepts any non-empty event type;
// the counter set stays closed.
func (r *Recorder) Record(ctx context.Context, businessID int64, eventType string, meta Meta) {
	if eventType == "" {
		return
	}

	info := ua.Parse(meta.UserAgent)
	if info.IsBot {
		r.log.Debugw("skipping bot traffic", "business", businessID, "ua", meta.UserAgent)
		return
	}

	metrics.AnalyticsEventsTotal.WithLabelValues(eventType).Inc()

	// Counter first.  If the increment fails the event row is skipped
	// too, keeping the log and the aggregates consistent.
	if col, known := counterCols[eventType]; known {
		if err := r.bumpCounter(ctx, businessID, col); err != nil {
			metrics.AnalyticsErrorsTotal.Inc()
			r.log.Warnw("analytics counter increment failed",
				"business", businessID, "column", col, "err", err)
			return
		}
	}

	if err := r.appendEvent(ctx, businessID, eventType, info.Device, r.country(meta.IP)); err != nil {
		metrics.AnalyticsErrorsTotal.Inc()
		r.log.Warnw("analytics event append failed",
			"business", businessID, "type", eventType, "err", err)
	}
}

func (r *Recorder) appendEvent(ctx context.Context, businessID int64, eventType, device, country string) error {
	const q = `INSERT INTO analytics_event
                (id, business_id, event_type, device, country, created_at)
               VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		uuid.NewString(), businessID, eventType, device, country,
		time.Now().UTC())
	return err
}

// bumpCounter upserts the per-business counter row.  col comes from
// counterCols only.
func (r *Recorder) bumpCounter(ctx context.Context, businessID int64, col string) error {
	q := `INSERT INTO analytics_counter (business_id, ` + col + `)
              VALUES (?, 1)
              ON DUPLICATE KEY UPDATE ` + col + ` = ` + col + ` + 1`
	_, err := r.db.ExecContext(ctx, q, businessID)
	return err
}

// country resolves an ISO country code from the client IP, best-effort.
func (r *Recorder) country(ip string) string {
	if r.geo == nil || ip == "" {
		return ""
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	rec, err := r.geo.Country(parsed)
	if err != nil || rec == nil {
		return ""
	}
	return rec.Country.IsoCode
}
