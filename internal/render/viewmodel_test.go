// internal/render/viewmodel_test.go
//
// Unit-tests for the pure derivation stage.
//
// Run: go test ./internal/render -v

package render

import (
	"strings"
	"testing"

	"github.com/yanizio/vitrine/internal/business"
	"github.com/yanizio/vitrine/internal/category"
)

func TestTruncateDescription(t *testing.T) {
	short := "plain short description"
	if got := TruncateDescription(short); got != short {
		t.Errorf("short input must pass through, got %q", got)
	}

	long := strings.Repeat("word ", 60)
	got := TruncateDescription(long)
	if len([]rune(got)) > 155 {
		t.Errorf("truncated length = %d, want <= 155", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncation marker missing: %q", got)
	}
	// Stability: the cut never moves between calls.
	if again := TruncateDescription(long); again != got {
		t.Error("truncation is not stable")
	}
}

func TestExtractYouTubeID(t *testing.T) {
	cases := map[string]string{
		"https://youtu.be/dQw4w9WgXcQ":                          "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":           "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1":  "dQw4w9WgXcQ",
		"https://vimeo.com/12345":                               "",
		"not a url":                                             "",
		"":                                                      "",
	}
	for in, want := range cases {
		if got := ExtractYouTubeID(in); got != want {
			t.Errorf("ExtractYouTubeID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractLatLng(t *testing.T) {
	lat, lng := ExtractLatLng("https://maps.example/@-1.2921,36.8219,15z")
	if lat != "-1.2921" || lng != "36.8219" {
		t.Errorf("got %s,%s", lat, lng)
	}

	// Absent or unparseable links fall back to the fixed default.
	for _, in := range []string{"", "https://maps.example/place/foo"} {
		lat, lng = ExtractLatLng(in)
		if lat != defaultLat || lng != defaultLng {
			t.Errorf("ExtractLatLng(%q) = %s,%s, want default", in, lat, lng)
		}
	}
}

func TestSchemaTypeFor(t *testing.T) {
	if got := SchemaTypeFor(category.Clinic); got != "MedicalBusiness" {
		t.Errorf("Clinic → %q", got)
	}
	if got := SchemaTypeFor(category.Other); got != "LocalBusiness" {
		t.Errorf("unmapped category must fall back to LocalBusiness, got %q", got)
	}
}

func TestKeywords(t *testing.T) {
	biz := &business.Record{
		Name:     "A & B Shop",
		Category: category.Shop,
		Owner:    "Alice",
		Address:  "12 Main St, Riverside",
	}
	got := Keywords(biz)
	want := []string{"A & B Shop", "Shop", "Alice", "Riverside"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	// Empty fields are skipped, not emitted as empty keywords.
	biz.Owner = ""
	for _, k := range Keywords(biz) {
		if k == "" {
			t.Fatal("empty keyword emitted")
		}
	}
}

func TestBuildViewModelFlags(t *testing.T) {
	biz := &business.Record{Name: "X", Category: category.Other}
	vm := BuildViewModel(biz, "classic", "https://api.example.com")

	if vm.Palette.Name != "classic" {
		t.Errorf("palette = %q", vm.Palette.Name)
	}
	if vm.HasGallery || vm.HasServices || vm.HasOffers || vm.HasVideo ||
		vm.HasAppointment || vm.HasHours || vm.HasMap || vm.HasSocial {
		t.Error("flags must be false for an empty record")
	}
	// Contact and hours FAQs need data; an empty record has none.
	if vm.HasFAQ {
		t.Errorf("unexpected FAQs: %v", vm.FAQs)
	}
}

func TestWeekdaysFixedOrder(t *testing.T) {
	hours := business.HoursMap{
		"sunday":    {Open: true, Start: "10:00", End: "14:00"},
		"monday":    {Open: true, Start: "09:00", End: "18:00"},
		"wednesday": {Open: true, Start: "09:00", End: "18:00"},
	}
	got := Weekdays(hours)
	want := []string{"monday", "wednesday", "sunday"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
