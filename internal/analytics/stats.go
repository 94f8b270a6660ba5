// internal/analytics/stats.go
//
// Counter snapshots and time-windowed aggregation for owner dashboards.
package analytics

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yanizio/vitrine/internal/fault"
)

// Stats is the counter snapshot for one business.  A business with no
// recorded events yields the zero value, not an error.
type Stats struct {
	BusinessID     int64 `db:"business_id" json:"businessId"`
	VisitorCount   int64 `db:"visitor_count" json:"visitorCount"`
	CallClicks     int64 `db:"call_clicks" json:"callClicks"`
	WhatsAppClicks int64 `db:"whatsapp_clicks" json:"whatsappClicks"`
	GalleryViews   int64 `db:"gallery_views" json:"galleryViews"`
	MapClicks      int64 `db:"map_clicks" json:"mapClicks"`
}

// TimeStats aggregates the event log over one bounded window.
type TimeStats struct {
	Period string           `json:"period"`
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"byType"`
}

// Periods accepted by TimeStats.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

// GetStats returns the counter snapshot for businessID.
func (r *Recorder) GetStats(ctx context.Context, businessID int64) (*Stats, error) {
	const q = `SELECT business_id, visitor_count, call_clicks,
                      whatsapp_clicks, gallery_views, map_clicks
                 FROM analytics_counter WHERE business_id = ? LIMIT 1`
	var s Stats
	if err := r.db.GetContext(ctx, &s, q, businessID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &Stats{BusinessID: businessID}, nil
		}
		return nil, fault.Internalf(err, "load counters for business %d", businessID)
	}
	return &s, nil
}

// GetTimeStats aggregates the event log for businessID over the given
// period.  An unknown period is a validation error.
func (r *Recorder) GetTimeStats(ctx context.Context, businessID int64, period string) (*TimeStats, error) {
	var since time.Time
	switch period {
	case PeriodWeek:
		since = time.Now().UTC().AddDate(0, 0, -7)
	case PeriodMonth:
		since = time.Now().UTC().AddDate(0, -1, 0)
	case PeriodAll:
		// Zero time keeps the window unbounded.
	default:
		return nil, fault.Validationf("period", "period must be week, month, or all")
	}

	q := `SELECT event_type, COUNT(*) AS n FROM analytics_event
               WHERE business_id = ?`
	args := []any{businessID}
	if !since.IsZero() {
		q += ` AND created_at >= ?`
		args = append(args, since)
	}
	q += ` GROUP BY event_type`

	rows, err := r.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, fault.Internalf(err, "aggregate events for business %d", businessID)
	}
	defer rows.Close()

	out := &TimeStats{Period: period, ByType: make(map[string]int64)}
	for rows.Next() {
		var typ string
		var n int64
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fault.Internalf(err, "scan event aggregate")
		}
		out.ByType[typ] = n
		out.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Internalf(err, "aggregate events for business %d", businessID)
	}
	return out, nil
}
