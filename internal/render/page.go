// internal/render/page.go
//
// The page writer: view model in, complete HTML document out.
//
// Context
// -------
// Page is a pure function.  No I/O, no clock, no mutation of its inputs;
// identical inputs produce byte-identical output, which is what lets the
// service layer cache rendered pages and lets tests compare whole
// documents.  Every value interpolated into text or attribute context
// passes through esc(); there is no exempt path.  Optional sections are
// omitted entirely when their data is absent, never emitted empty.
//
// Notes
// -----
// • Section order is fixed: hero, amenities, services, offers, gallery,
//   video, hours, appointment, FAQ, map, footer.
// • Oxford commas, two spaces after periods.
package render

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/yanizio/vitrine/internal/business"
	"github.com/yanizio/vitrine/internal/head"
)

// esc is the single escaping helper for text and double-quoted attribute
// context.  It rewrites &, <, >, ", and '.
func esc(s string) string { return template.HTMLEscapeString(s) }

// Page renders the complete HTML document for a business.
func Page(biz *business.Record, themeName, apiBaseURL string) string {
	vm := BuildViewModel(biz, themeName, apiBaseURL)

	var sb strings.Builder
	sb.Grow(16 * 1024)

	sb.WriteString("<!doctype html><html lang=\"en\"><head>")
	writeHead(&sb, biz, vm)
	sb.WriteString("</head><body>")

	writeNavbar(&sb, biz)
	writeHero(&sb, biz)
	if vm.HasAmenities {
		writeAmenities(&sb, vm)
	}
	if vm.HasServices {
		writeServices(&sb, biz)
	}
	if vm.HasOffers {
		writeOffers(&sb, biz)
	}
	if vm.HasGallery {
		writeGallery(&sb, biz)
	}
	if vm.HasVideo {
		writeVideo(&sb, vm)
	}
	if vm.HasHours {
		writeHours(&sb, biz)
	}
	if vm.HasAppointment {
		writeAppointment(&sb, biz)
	}
	if vm.HasFAQ {
		writeFAQ(&sb, vm)
	}
	if vm.HasMap {
		writeMap(&sb, biz, vm)
	}
	writeFooter(&sb, biz, vm)

	sb.WriteString(BehaviorScript(vm.APIBaseURL, biz.ID, len(biz.Images)))
	sb.WriteString("</body></html>")
	return sb.String()
}

// writeHead assembles the SEO surface through the head builder so tag
// order stays fixed and duplicates collapse.
func writeHead(sb *strings.Builder, biz *business.Record, vm ViewModel) {
	h := head.New()
	h.SetTitle(pageTitle(biz))
	h.Canonical(vm.CanonicalURL)

	h.Meta(`<meta charset="utf-8">`)
	h.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	if vm.MetaDescription != "" {
		h.Meta(`<meta name="description" content="` + esc(vm.MetaDescription) + `">`)
	}
	if len(vm.Keywords) > 0 {
		h.Meta(`<meta name="keywords" content="` + esc(strings.Join(vm.Keywords, ", ")) + `">`)
	}

	// Open Graph and Twitter cards.
	h.Meta(`<meta property="og:type" content="business.business">`)
	h.Meta(`<meta property="og:title" content="` + esc(pageTitle(biz)) + `">`)
	if vm.MetaDescription != "" {
		h.Meta(`<meta property="og:description" content="` + esc(vm.MetaDescription) + `">`)
	}
	if vm.CanonicalURL != "" {
		h.Meta(`<meta property="og:url" content="` + esc(vm.CanonicalURL) + `">`)
	}
	if biz.LogoURL != "" {
		h.Meta(`<meta property="og:image" content="` + esc(biz.LogoURL) + `">`)
	}
	h.Meta(`<meta name="twitter:card" content="summary_large_image">`)
	h.Meta(`<meta name="twitter:title" content="` + esc(pageTitle(biz)) + `">`)
	if vm.MetaDescription != "" {
		h.Meta(`<meta name="twitter:description" content="` + esc(vm.MetaDescription) + `">`)
	}

	// Structured-data graph.
	h.JSONLD(OrganizationJSONLD(biz))
	h.JSONLD(LocalBusinessJSONLD(biz, vm))
	h.JSONLD(BreadcrumbJSONLD(biz))
	for _, svc := range biz.Services {
		h.JSONLD(ServiceJSONLD(biz, svc))
	}
	if vm.HasGallery {
		h.JSONLD(GalleryJSONLD(biz))
	}
	if vm.HasVideo {
		h.JSONLD(VideoJSONLD(biz, vm.YouTubeID))
	}

	h.WriteTo(sb)
	writeStyle(sb, vm.Palette)
}

func pageTitle(biz *business.Record) string {
	return biz.Name + " | " + string(biz.Category)
}

// writeStyle emits the palette as CSS custom properties plus the layout
// rules shared by all three themes.
func writeStyle(sb *strings.Builder, p Palette) {
	sb.WriteString("<style>:root{")
	sb.WriteString("--primary:" + p.Primary + ";")
	sb.WriteString("--secondary:" + p.Secondary + ";")
	sb.WriteString("--accent:" + p.Accent + ";")
	sb.WriteString("--bg:" + p.Background + ";")
	sb.WriteString("--surface:" + p.Surface + ";")
	sb.WriteString("--text:" + p.Text + ";")
	sb.WriteString("--muted:" + p.Muted + ";")
	sb.WriteString("--radius:" + p.Radius + ";")
	sb.WriteString("}body{margin:0;font-family:" + p.FontStack + ";background:var(--bg);color:var(--text);}")
	sb.WriteString(baseCSS)
	sb.WriteString("</style>")
}

const baseCSS = `nav{background:var(--primary);color:#fff;padding:14px 20px;display:flex;align-items:center;gap:12px;}
nav .tagline{opacity:.85;font-size:.9em;}
section{max-width:960px;margin:0 auto;padding:32px 20px;}
h1,h2{color:var(--secondary);}
.hero{display:flex;flex-wrap:wrap;gap:24px;align-items:center;}
.hero img{max-width:160px;border-radius:var(--radius);}
.btn{display:inline-block;background:var(--primary);color:#fff;padding:10px 18px;border-radius:var(--radius);text-decoration:none;margin-right:8px;}
.btn.alt{background:var(--accent);}
.chips span{display:inline-block;background:var(--surface);border:1px solid var(--muted);border-radius:999px;padding:4px 12px;margin:4px;font-size:.9em;}
.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(240px,1fr));gap:16px;}
.card{background:var(--surface);border-radius:var(--radius);padding:16px;box-shadow:0 1px 3px rgba(0,0,0,.08);}
.card .price{color:var(--primary);font-weight:700;}
.badge{background:var(--accent);color:#fff;border-radius:var(--radius);padding:2px 8px;font-size:.8em;}
.gallery{display:grid;grid-template-columns:repeat(auto-fill,minmax(160px,1fr));gap:8px;}
.gallery img{width:100%;height:140px;object-fit:cover;border-radius:var(--radius);cursor:pointer;}
#lightbox{display:none;position:fixed;inset:0;background:rgba(0,0,0,.85);align-items:center;justify-content:center;}
#lightbox.open{display:flex;}
#lightbox img{max-width:90vw;max-height:85vh;}
#lightbox button{position:absolute;top:50%;background:none;border:none;color:#fff;font-size:2.5em;cursor:pointer;}
.video-wrap{position:relative;padding-bottom:56.25%;}
.video-wrap iframe{position:absolute;inset:0;width:100%;height:100%;border:0;}
table.hours{border-collapse:collapse;width:100%;}
table.hours td{padding:6px 10px;border-bottom:1px solid var(--surface);}
.faq-item{border-bottom:1px solid var(--muted);}
.faq-q{cursor:pointer;padding:12px 0;font-weight:600;}
.faq-a{display:none;padding-bottom:12px;color:var(--muted);}
.faq-item.open .faq-a{display:block;}
form.appointment label{display:block;margin:10px 0 4px;}
form.appointment input,form.appointment select,form.appointment textarea{width:100%;padding:8px;border:1px solid var(--muted);border-radius:var(--radius);}
footer{background:var(--secondary);color:#fff;padding:24px 20px;text-align:center;}
footer a{color:var(--accent);}`

func writeNavbar(sb *strings.Builder, biz *business.Record) {
	sb.WriteString(`<nav><strong>` + esc(biz.Name) + `</strong>`)
	if biz.NavTagline != "" {
		sb.WriteString(`<span class="tagline">` + esc(biz.NavTagline) + `</span>`)
	}
	sb.WriteString(`</nav>`)
}

func writeHero(sb *strings.Builder, biz *business.Record) {
	sb.WriteString(`<section id="hero" class="hero">`)
	if biz.LogoURL != "" {
		sb.WriteString(`<img src="` + esc(biz.LogoURL) + `" alt="` + esc(biz.Name) + ` logo">`)
	}
	sb.WriteString(`<div><h1>` + esc(biz.Name) + `</h1>`)
	if biz.Descr != "" {
		sb.WriteString(`<p>` + esc(biz.Descr) + `</p>`)
	}
	if biz.Mobile != "" {
		sb.WriteString(`<a class="btn" href="tel:` + esc(biz.Mobile) + `">Call now</a>`)
	}
	if biz.WhatsApp != "" {
		sb.WriteString(`<a class="btn alt" data-track="whatsapp" href="https://wa.me/` +
			esc(biz.WhatsApp) + `" target="_blank" rel="noopener">WhatsApp</a>`)
	}
	sb.WriteString(`</div></section>`)
}

func writeAmenities(sb *strings.Builder, vm ViewModel) {
	sb.WriteString(`<section id="amenities"><div class="chips">`)
	for _, a := range vm.Amenities {
		sb.WriteString(`<span>` + esc(a) + `</span>`)
	}
	sb.WriteString(`</div></section>`)
}

func writeServices(sb *strings.Builder, biz *business.Record) {
	sb.WriteString(`<section id="services"><h2>Services</h2><div class="cards">`)
	for _, svc := range biz.Services {
		sb.WriteString(`<div class="card">`)
		if svc.Image != "" {
			sb.WriteString(`<img src="` + esc(svc.Image) + `" alt="` + esc(svc.Title) + `">`)
		}
		sb.WriteString(`<h3>` + esc(svc.Title))
		if svc.Featured {
			sb.WriteString(` <span class="badge">Featured</span>`)
		}
		sb.WriteString(`</h3>`)
		if svc.Description != "" {
			sb.WriteString(`<p>` + esc(svc.Description) + `</p>`)
		}
		if svc.Price != "" {
			sb.WriteString(`<p class="price">` + esc(svc.Price) + `</p>`)
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div></section>`)
}

func writeOffers(sb *strings.Builder, biz *business.Record) {
	sb.WriteString(`<section id="offers"><h2>Special Offers</h2><div class="cards">`)
	for _, off := range biz.Offers {
		sb.WriteString(`<div class="card"><h3>` + esc(off.Title) + `</h3>`)
		if off.Description != "" {
			sb.WriteString(`<p>` + esc(off.Description) + `</p>`)
		}
		if off.ExpiryDate != "" {
			sb.WriteString(`<p class="price">Valid until ` + esc(off.ExpiryDate) + `</p>`)
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div></section>`)
}

func writeGallery(sb *strings.Builder, biz *business.Record) {
	sb.WriteString(`<section id="gallery"><h2>Gallery</h2><div class="gallery">`)
	for i, img := range biz.Images {
		idx := strconv.Itoa(i)
		sb.WriteString(`<img src="` + esc(img) + `" alt="` + esc(biz.Name) + ` photo ` +
			idx + `" data-shot="` + esc(img) + `" onclick="openLightbox(` + idx + `)">`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`<div id="lightbox" onclick="closeLightbox()">` +
		`<button style="left:10px" onclick="event.stopPropagation();prevShot()">&#10094;</button>` +
		`<img id="lightbox-img" alt="enlarged photo" onclick="event.stopPropagation()">` +
		`<button style="right:10px" onclick="event.stopPropagation();nextShot()">&#10095;</button>` +
		`</div></section>`)
}

func writeVideo(sb *strings.Builder, vm ViewModel) {
	sb.WriteString(`<section id="video"><h2>Video</h2><div class="video-wrap">` +
		`<iframe src="https://www.youtube.com/embed/` + esc(vm.YouTubeID) +
		`" title="Business video" allowfullscreen loading="lazy"></iframe>` +
		`</div></section>`)
}

func writeHours(sb *strings.Builder, biz *business.Record) {
	sb.WriteString(`<section id="hours"><h2>Opening Hours</h2><table class="hours">`)
	for _, d := range Weekdays(biz.Hours) {
		h := biz.Hours[d]
		sb.WriteString(`<tr><td>` + WeekdayLabels[d] + `</td><td>`)
		if h.Open {
			sb.WriteString(esc(h.Start) + " - " + esc(h.End))
		} else {
			sb.WriteString("Closed")
		}
		sb.WriteString(`</td></tr>`)
	}
	sb.WriteString(`</table></section>`)
}

func writeAppointment(sb *strings.Builder, biz *business.Record) {
	sb.WriteString(`<section id="appointment"><h2>Book an Appointment</h2>`)
	if biz.Appointments.Note != "" {
		sb.WriteString(`<p>` + esc(biz.Appointments.Note) + `</p>`)
	}
	sb.WriteString(`<form id="appointment-form" class="appointment">` +
		`<label for="ap-name">Name</label><input id="ap-name" name="name" required>` +
		`<label for="ap-phone">Phone</label><input id="ap-phone" name="phone" type="tel" required>` +
		`<label for="ap-date">Preferred date</label><input id="ap-date" name="date" type="date" required>` +
		`<label for="ap-note">Notes</label><textarea id="ap-note" name="note" rows="3"></textarea>` +
		`<p><button class="btn" type="submit">Request appointment</button></p>` +
		`<p id="appointment-status" role="status"></p>` +
		`</form></section>`)
}

func writeFAQ(sb *strings.Builder, vm ViewModel) {
	sb.WriteString(`<section id="faq"><h2>Frequently Asked Questions</h2>`)
	for _, f := range vm.FAQs {
		sb.WriteString(`<div class="faq-item"><div class="faq-q">` + esc(f.Question) +
			`</div><div class="faq-a">` + esc(f.Answer) + `</div></div>`)
	}
	sb.WriteString(`</section>`)
}

func writeMap(sb *strings.Builder, biz *business.Record, vm ViewModel) {
	sb.WriteString(`<section id="map"><h2>Find Us</h2>`)
	if biz.Address != "" {
		sb.WriteString(`<p>` + esc(biz.Address) + `</p>`)
	}
	sb.WriteString(`<p><a class="btn" data-track="map" href="` + esc(biz.MapLink) +
		`" target="_blank" rel="noopener">Open in Maps (` + esc(vm.Lat) + `, ` +
		esc(vm.Lng) + `)</a></p></section>`)
}

func writeFooter(sb *strings.Builder, biz *business.Record, vm ViewModel) {
	sb.WriteString(`<footer>`)
	if biz.FooterDesc != "" {
		sb.WriteString(`<p>` + esc(biz.FooterDesc) + `</p>`)
	}
	if vm.HasSocial {
		sb.WriteString(`<p>`)
		if biz.Social.Instagram != "" {
			sb.WriteString(`<a href="` + esc(biz.Social.Instagram) + `" rel="noopener">Instagram</a> `)
		}
		if biz.Social.Facebook != "" {
			sb.WriteString(`<a href="` + esc(biz.Social.Facebook) + `" rel="noopener">Facebook</a> `)
		}
		if biz.Social.Website != "" {
			sb.WriteString(`<a href="` + esc(biz.Social.Website) + `" rel="noopener">Website</a>`)
		}
		sb.WriteString(`</p>`)
	}
	sb.WriteString(`<p>&copy; ` + esc(biz.Name) + `</p></footer>`)
}
