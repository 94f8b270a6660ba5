// internal/render/page_test.go
//
// Unit-tests for the page writer: determinism, escaping, and conditional
// sections.
//
// Run: go test ./internal/render -v

package render

import (
	"strings"
	"testing"

	"github.com/yanizio/vitrine/internal/business"
)

func sampleBusiness() *business.Record {
	return &business.Record{
		ID:       7,
		Slug:     "abshop",
		Name:     "A & B Shop",
		Owner:    "Alice",
		Category: "Shop",
		Address:  "12 Main St, Riverside",
		Descr:    "Neighborhood store for everyday things.",
		Mobile:   "0712345678",
		Email:    "a@b.example",
		WhatsApp: "254712345678",
		MapLink:  "https://maps.example/@-1.2921,36.8219,15z",
		LogoURL:  "https://cdn.example/logo.png",
		Images:   business.StringList{"https://cdn.example/1.jpg", "https://cdn.example/2.jpg"},
		YouTube:  "https://youtu.be/dQw4w9WgXcQ",
		Theme:    "modern",
		Services: business.ServiceList{
			{Title: "Delivery", Description: "Same day", Price: "5", Featured: true},
		},
		Offers: business.OfferList{{Title: "Opening sale", ExpiryDate: "2026-12-31"}},
		Hours: business.HoursMap{
			"monday": {Open: true, Start: "09:00", End: "18:00"},
			"sunday": {Open: false},
		},
		Appointments:    business.AppointmentSettings{Enabled: true, Note: "Walk-ins welcome"},
		Social:          business.SocialLinks{Instagram: "https://instagram.com/abshop"},
		Status:          business.StatusApproved,
		SubdomainURL:    "https://abshop.example.com",
		SubdirectoryURL: "https://example.com/abshop",
	}
}

func TestPageDeterministic(t *testing.T) {
	biz := sampleBusiness()
	a := Page(biz, biz.Theme, "https://api.example.com")
	b := Page(biz, biz.Theme, "https://api.example.com")
	if a != b {
		t.Fatal("identical inputs must produce byte-identical output")
	}
}

func TestPageEscapesEverywhere(t *testing.T) {
	biz := sampleBusiness()
	biz.Name = `<script>alert("x")</script>`
	biz.Descr = `a & b "quoted" <b>`

	out := Page(biz, biz.Theme, "https://api.example.com")

	if strings.Contains(out, `<script>alert(`) {
		t.Fatal("unescaped business name reached the document")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatal("angle brackets not escaped")
	}
	// The name appears in title, navbar, hero, alt text, and footer; every
	// occurrence must be escaped.
	if n := strings.Count(out, "&lt;script&gt;alert"); n < 3 {
		t.Fatalf("expected the escaped name in several contexts, found %d", n)
	}
}

func TestPageOmitsEmptySections(t *testing.T) {
	biz := sampleBusiness()
	biz.Services = nil
	biz.Images = nil
	biz.Offers = nil
	biz.YouTube = "not a video link"
	biz.Appointments = business.AppointmentSettings{}

	out := Page(biz, biz.Theme, "https://api.example.com")

	for _, id := range []string{`<section id="services"`, `<section id="gallery"`,
		`<section id="offers"`, `<section id="video"`, `<section id="appointment"`} {
		if strings.Contains(out, id) {
			t.Errorf("section %s should be absent when data is empty", id)
		}
	}
}

func TestPageEmitsSectionsWhenDataPresent(t *testing.T) {
	biz := sampleBusiness()
	out := Page(biz, biz.Theme, "https://api.example.com")

	for _, want := range []string{
		`<section id="services"`, `<section id="gallery"`, `<section id="offers"`,
		`<section id="video"`, `<section id="appointment"`, `<section id="faq"`,
		`<section id="hours"`, `<section id="map"`,
		`<title>A &amp; B Shop | Shop</title>`,
		`<link rel="canonical" href="https://abshop.example.com">`,
		`https://www.youtube.com/embed/dQw4w9WgXcQ`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}

	// Structured data: one block per schema plus one per service.
	if n := strings.Count(out, `<script type="application/ld+json">`); n != 6 {
		t.Errorf("expected 6 JSON-LD blocks (org, local, breadcrumb, service, gallery, video), got %d", n)
	}
	if !strings.Contains(out, `"@type":"Store"`) {
		t.Error("category Shop must map to schema type Store")
	}
}

func TestPageEmitsOneServiceSchemaPerService(t *testing.T) {
	biz := sampleBusiness()
	biz.Services = business.ServiceList{
		{Title: "Delivery", Description: "Same day", Price: "5", Featured: true},
		{Title: "Gift wrap", Description: "In store", Price: "2"},
		{Title: "Repairs", Price: "15"},
	}

	out := Page(biz, biz.Theme, "https://api.example.com")

	// Distinct documents share a long common prefix; dedup must still keep
	// one block per service.
	if n := strings.Count(out, `"@type":"Service"`); n != 3 {
		t.Fatalf("expected 3 Service JSON-LD blocks, got %d", n)
	}
	for _, name := range []string{"Delivery", "Gift wrap", "Repairs"} {
		if !strings.Contains(out, `"name":"`+name+`"`) {
			t.Errorf("service %q missing from structured data", name)
		}
	}
	// org, local, breadcrumb, 3 services, gallery, video.
	if n := strings.Count(out, `<script type="application/ld+json">`); n != 8 {
		t.Errorf("expected 8 JSON-LD blocks, got %d", n)
	}
}

func TestPageUnknownThemeFallsBackToModern(t *testing.T) {
	biz := sampleBusiness()
	known := Page(biz, "modern", "https://api.example.com")
	unknown := Page(biz, "neon", "https://api.example.com")
	if known != unknown {
		t.Fatal("unknown theme must render the modern palette")
	}
}

func TestPageBeaconConfig(t *testing.T) {
	biz := sampleBusiness()
	out := Page(biz, biz.Theme, "https://api.example.com/")

	if !strings.Contains(out, `var VITRINE={"api":"https://api.example.com","businessId":7,"gallery":2};`) {
		t.Fatal("behavior config not embedded as expected")
	}
	// Page views are counted once, by the server; the inline script must
	// not fire a second visitor event on load.
	if strings.Contains(out, `track("visitor")`) {
		t.Fatal("client-side visitor beacon double-counts page views")
	}
	if !strings.Contains(out, `track("call_click")`) {
		t.Fatal("interaction beacons missing")
	}
}
