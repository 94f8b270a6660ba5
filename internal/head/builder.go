// internal/head/builder.go
//
// Collector for everything inside a rendered page's <head>.
//
// Context
// -------
// The page writer pushes tags in a fixed order while it derives them from
// the view model, then emits the whole head in one pass.  Insertion order
// is preserved and duplicate tags are dropped, which keeps the output
// byte-identical for identical inputs.
//
// Helpers
// -------
//   - SetTitle            – single <title> (last call wins), escaped.
//   - Canonical           – single canonical link, escaped.
//   - Meta, Link, Script  – raw pre-built tags with deduplication.
//   - JSONLD              – raw JSON-LD documents, each wrapped in its own
//     <script type="application/ld+json"> block on write.
//
// Notes
// -----
// • One Builder per render call; it is not shared across goroutines.
// • Oxford commas, two spaces after periods.
package head

import (
	"html/template"
	"strings"
)

// Builder accumulates head tags for one render call.
type Builder struct {
	title     string
	canonical string

	metas   []string
	links   []string
	scripts []string
	jsonLD  []string

	seen map[string]struct{}
}

func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) { b.title = t }

// Canonical sets the canonical URL.  The last caller wins.
func (b *Builder) Canonical(url string) { b.canonical = url }

func (b *Builder) Meta(tag string)   { b.add("meta:"+tag, &b.metas, tag) }
func (b *Builder) Link(tag string)   { b.add("link:"+tag, &b.links, tag) }
func (b *Builder) Script(tag string) { b.add("script:"+tag, &b.scripts, tag) }

// JSONLD registers a raw JSON-LD document.  The dedup key is the whole
// document: distinct documents of the same @type (one Service block per
// service, say) must all survive, only exact duplicates are dropped.
func (b *Builder) JSONLD(doc string) { b.add("jsonld:"+doc, &b.jsonLD, doc) }

func (b *Builder) add(k string, tgt *[]string, tag string) {
	if _, dup := b.seen[k]; dup {
		return
	}
	b.seen[k] = struct{}{}
	*tgt = append(*tgt, tag)
}

// WriteTo emits the collected head contents in fixed order: title,
// canonical, metas, links, JSON-LD blocks, then scripts.
func (b *Builder) WriteTo(sb *strings.Builder) {
	if b.title != "" {
		sb.WriteString("<title>")
		sb.WriteString(template.HTMLEscapeString(b.title))
		sb.WriteString("</title>")
	}
	if b.canonical != "" {
		sb.WriteString(`<link rel="canonical" href="`)
		sb.WriteString(template.HTMLEscapeString(b.canonical))
		sb.WriteString(`">`)
	}
	for _, m := range b.metas {
		sb.WriteString(m)
	}
	for _, l := range b.links {
		sb.WriteString(l)
	}
	for _, js := range b.jsonLD {
		sb.WriteString(`<script type="application/ld+json">`)
		sb.WriteString(js)
		sb.WriteString(`</script>`)
	}
	for _, s := range b.scripts {
		sb.WriteString(s)
	}
}
