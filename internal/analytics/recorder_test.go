// internal/analytics/recorder_test.go
//
// Unit-tests for the analytics recorder using sqlmock.
//
// Run: go test ./internal/analytics -v

package analytics

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yanizio/vitrine/internal/metrics"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

func newMockRecorder(t *testing.T) (*Recorder, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRecorder(sqlx.NewDb(db, "mysql"), nil, nil), mock
}

func TestRecordWritesCounterThenEvent(t *testing.T) {
	r, mock := newMockRecorder(t)

	// Expectations are ordered: the counter upsert must land before the
	// event append.
	mock.ExpectExec(regexp.QuoteMeta(
		`ON DUPLICATE KEY UPDATE whatsapp_clicks = whatsapp_clicks + 1`)).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO analytics_event").
		WillReturnResult(sqlmock.NewResult(1, 1))

	r.Record(context.Background(), 42, EventWhatsAppClick, Meta{UserAgent: chromeUA})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

// The caller must observe nothing even when a write blows up.
func TestRecordAbsorbsFailures(t *testing.T) {
	r, mock := newMockRecorder(t)

	mock.ExpectExec("INSERT INTO analytics_counter").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO analytics_event").
		WillReturnError(errors.New("disk on fire"))

	// Record has no error return; reaching the next line is the contract.
	r.Record(context.Background(), 42, EventWhatsAppClick, Meta{UserAgent: chromeUA})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

// A failed counter increment must not strand an orphaned log row.
func TestRecordCounterFailureSkipsEventRow(t *testing.T) {
	r, mock := newMockRecorder(t)

	mock.ExpectExec("INSERT INTO analytics_counter").
		WillReturnError(errors.New("deadlock"))

	before := testutil.ToFloat64(metrics.AnalyticsErrorsTotal)
	r.Record(context.Background(), 42, EventCallClick, Meta{UserAgent: chromeUA})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
	// Exactly one absorbed failure: the counter.  An event append after
	// the failed increment would hit the mock, fail, and count a second.
	if got := testutil.ToFloat64(metrics.AnalyticsErrorsTotal) - before; got != 1 {
		t.Fatalf("absorbed-error delta = %v, want 1 (no event append after counter failure)", got)
	}
}

// Types outside the counter set still land in the event log.
func TestRecordNonCounterTypeAppendsLogOnly(t *testing.T) {
	r, mock := newMockRecorder(t)

	mock.ExpectExec("INSERT INTO analytics_event").
		WithArgs(sqlmock.AnyArg(), int64(42), "appointment_request",
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	r.Record(context.Background(), 42, "appointment_request", Meta{UserAgent: chromeUA})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestRecordSkipsBots(t *testing.T) {
	r, mock := newMockRecorder(t)

	r.Record(context.Background(), 42, EventVisitor,
		Meta{UserAgent: "Googlebot/2.1 (+http://www.google.com/bot.html)"})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("bot traffic must not reach the store: %v", err)
	}
}

func TestGetStatsZeroRow(t *testing.T) {
	r, mock := newMockRecorder(t)

	mock.ExpectQuery("SELECT business_id, visitor_count").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"business_id"}))

	s, err := r.GetStats(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if s.BusinessID != 42 || s.VisitorCount != 0 {
		t.Fatalf("want zero snapshot, got %+v", s)
	}
}

func TestGetStatsSnapshot(t *testing.T) {
	r, mock := newMockRecorder(t)

	mock.ExpectQuery("SELECT business_id, visitor_count").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"business_id", "visitor_count", "call_clicks",
			"whatsapp_clicks", "gallery_views", "map_clicks",
		}).AddRow(42, 100, 5, 9, 31, 2))

	s, err := r.GetStats(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if s.VisitorCount != 100 || s.WhatsAppClicks != 9 || s.MapClicks != 2 {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
}

func TestGetTimeStats(t *testing.T) {
	r, mock := newMockRecorder(t)

	mock.ExpectQuery("GROUP BY event_type").
		WillReturnRows(sqlmock.NewRows([]string{"event_type", "n"}).
			AddRow("visitor", 10).AddRow("call_click", 3))

	ts, err := r.GetTimeStats(context.Background(), 42, PeriodWeek)
	if err != nil {
		t.Fatalf("GetTimeStats: %v", err)
	}
	if ts.Total != 13 || ts.ByType["visitor"] != 10 || ts.ByType["call_click"] != 3 {
		t.Fatalf("unexpected aggregate: %+v", ts)
	}

	if _, err := r.GetTimeStats(context.Background(), 42, "decade"); err == nil {
		t.Fatal("unknown period must be rejected")
	}
}
