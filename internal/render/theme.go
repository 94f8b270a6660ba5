// internal/render/theme.go
//
// The fixed theme table.
//
// A theme is a named palette applied uniformly across the rendered page.
// Unknown theme names fall back to "modern" so a bad enum value can never
// break rendering.
package render

// Palette holds the CSS custom-property values for one theme.
type Palette struct {
	Name       string
	Primary    string
	Secondary  string
	Accent     string
	Background string
	Surface    string
	Text       string
	Muted      string
	FontStack  string
	Radius     string
}

var palettes = map[string]Palette{
	"modern": {
		Name:       "modern",
		Primary:    "#2563eb",
		Secondary:  "#1e40af",
		Accent:     "#f59e0b",
		Background: "#f8fafc",
		Surface:    "#ffffff",
		Text:       "#0f172a",
		Muted:      "#64748b",
		FontStack:  "'Segoe UI', system-ui, -apple-system, sans-serif",
		Radius:     "12px",
	},
	"classic": {
		Name:       "classic",
		Primary:    "#7c2d12",
		Secondary:  "#431407",
		Accent:     "#ca8a04",
		Background: "#fffbeb",
		Surface:    "#fefce8",
		Text:       "#292524",
		Muted:      "#78716c",
		FontStack:  "Georgia, 'Times New Roman', serif",
		Radius:     "4px",
	},
	"minimal": {
		Name:       "minimal",
		Primary:    "#18181b",
		Secondary:  "#3f3f46",
		Accent:     "#a1a1aa",
		Background: "#ffffff",
		Surface:    "#fafafa",
		Text:       "#18181b",
		Muted:      "#71717a",
		FontStack:  "'Helvetica Neue', Arial, sans-serif",
		Radius:     "0",
	},
}

// PaletteFor resolves a stored theme name, defaulting to modern.
func PaletteFor(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["modern"]
}
