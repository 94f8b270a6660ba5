// internal/web/api_test.go
//
// Transport tests: status-code translation, identity gating, and the
// always-succeeding beacon.
//
// Run: go test ./internal/web -v

package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/vitrine/internal/analytics"
	"github.com/yanizio/vitrine/internal/business"
	"github.com/yanizio/vitrine/internal/site"
	"github.com/yanizio/vitrine/internal/user"
)

func newTestHandler(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sdb := sqlx.NewDb(db, "mysql")
	users := user.NewStore(sdb)
	svc := site.New(
		business.NewStore(sdb, nil),
		users,
		analytics.NewRecorder(sdb, nil, nil),
		"example.com", "https://api.example.com", 16,
	)
	return New(svc, users, zap.NewNop().Sugar()).Routes(), mock
}

var webStamp = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func visibleBusinessRows(id int64, slug string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "slug", "user_id", "business_name", "owner_name", "category",
		"address", "description", "mobile", "email", "whatsapp", "map_link",
		"logo_url", "images_url", "youtube_video", "theme", "navbar_tagline",
		"footer_description", "social_links", "services", "special_offers",
		"business_hours", "appointment_settings", "status",
		"edit_approval_status", "is_premium", "pending_edit",
		"subdomain_url", "subdirectory_url", "created_at", "updated_at",
	}).AddRow(
		id, slug, int64(9), "Joe's Cafe", "Joe", "Cafe",
		"12 Main St", "Corner cafe", "0712345678", "joe@cafe.example", "", "",
		"", `[]`, "", "modern", "",
		"", `{"instagram":"","facebook":"","website":""}`,
		`[]`, `[]`, `{}`, `{"enabled":false,"slotMinutes":0,"daysAhead":0,"note":""}`,
		"approved", "none", false, nil,
		"https://"+slug+".example.com", "https://example.com/"+slug,
		webStamp, webStamp,
	)
}

func TestPageUnknownSlugIs404(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nosuchplace", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestPageServesHTML(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("SELECT").WillReturnRows(visibleBusinessRows(7, "joescafe"))
	// The visitor event's two writes are absorbed by the recorder even
	// when the mock rejects them, so none are declared here.

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/joescafe", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(rr.Body.String(), "<!doctype html>") {
		t.Error("body is not an HTML document")
	}
}

func TestSlugAvailabilityRequiresParam(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/slug-availability", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["field"] != "slug" {
		t.Errorf("field = %v, want slug", body["field"])
	}
}

func TestSlugAvailabilityFree(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT 1 FROM businesses WHERE slug = ? LIMIT 1`)).
		WithArgs("joescafe").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/slug-availability?slug=joescafe", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var got site.SlugAvailability
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Available {
		t.Errorf("availability = %+v", got)
	}
}

func TestTrackAlwaysAccepts(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, body := range []string{
		`{"businessId":7,"eventType":"call_click"}`,
		`{"businessId":7,"eventType":"no_such_event"}`,
		`not json at all`,
	} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(body))
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusAccepted {
			t.Errorf("body %q: status = %d, want 202", body, rr.Code)
		}
	}
}

func TestMutationsRequireIdentity(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/businesses"},
		{http.MethodPut, "/api/businesses/7"},
		{http.MethodGet, "/api/businesses/7/stats"},
		{http.MethodPost, "/api/businesses/7/status"},
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`)))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tc.method, tc.path, rr.Code)
		}
	}
}

func TestStatusEndpointIsAdminOnly(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT role FROM user WHERE id = ?`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("normal"))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/businesses/7/status",
		strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("X-User-ID", "5")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}
}
