// internal/render/viewmodel.go
//
// Pure data derivation for the page writer.
//
// Context
// -------
// Rendering is split in two stages so the part requiring exact-text
// reproduction (escaping, schema shape) stays isolated from data
// derivation.  BuildViewModel computes everything the template stage
// needs: palette, SEO strings, the JSON-LD schema graph inputs, the
// extracted YouTube id, and map coordinates.  No I/O, no clock, no
// randomness; identical inputs yield an identical view model.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package render

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yanizio/vitrine/internal/business"
	"github.com/yanizio/vitrine/internal/category"
)

const metaDescriptionMax = 155

// Default map location used when the map link is absent or unparseable.
const (
	defaultLat = "20.5937"
	defaultLng = "78.9629"
)

// schemaTypes maps a category to its schema.org business type.  Unmapped
// categories fall back to the generic LocalBusiness.
var schemaTypes = map[category.Category]string{
	category.Restaurant: "Restaurant",
	category.Cafe:       "CafeOrCoffeeShop",
	category.Shop:       "Store",
	category.Salon:      "BeautySalon",
	category.Clinic:     "MedicalBusiness",
	category.Gym:        "ExerciseGym",
	category.Hotel:      "Hotel",
	category.Education:  "EducationalOrganization",
	category.Services:   "ProfessionalService",
}

// SchemaTypeFor resolves the schema.org type for a category.
func SchemaTypeFor(c category.Category) string {
	if t, ok := schemaTypes[c]; ok {
		return t
	}
	return "LocalBusiness"
}

var (
	youtubeRe = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/watch\?v=|youtube\.com/embed/)([A-Za-z0-9_-]{6,20})`)
	latLngRe  = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
)

// FAQ is one generated question/answer pair.
type FAQ struct {
	Question string
	Answer   string
}

// ViewModel is the structured render context consumed by the page writer.
type ViewModel struct {
	Palette    Palette
	APIBaseURL string

	Title           string
	MetaDescription string
	Keywords        []string
	CanonicalURL    string
	SchemaType      string

	YouTubeID string
	Lat, Lng  string

	FAQs      []FAQ
	Amenities []string

	HasGallery     bool
	HasServices    bool
	HasOffers      bool
	HasHours       bool
	HasVideo       bool
	HasAppointment bool
	HasFAQ         bool
	HasAmenities   bool
	HasMap         bool
	HasSocial      bool
}

// BuildViewModel derives the render context from a business record.
func BuildViewModel(biz *business.Record, themeName, apiBaseURL string) ViewModel {
	vm := ViewModel{
		Palette:    PaletteFor(themeName),
		APIBaseURL: strings.TrimRight(apiBaseURL, "/"),

		Title:           biz.Name,
		MetaDescription: TruncateDescription(biz.Descr),
		Keywords:        Keywords(biz),
		CanonicalURL:    biz.SubdomainURL,
		SchemaType:      SchemaTypeFor(biz.Category),

		YouTubeID: ExtractYouTubeID(biz.YouTube),
	}
	vm.Lat, vm.Lng = ExtractLatLng(biz.MapLink)

	vm.FAQs = buildFAQs(biz)
	vm.Amenities = buildAmenities(biz)

	vm.HasGallery = len(biz.Images) > 0
	vm.HasServices = len(biz.Services) > 0
	vm.HasOffers = len(biz.Offers) > 0
	vm.HasHours = len(biz.Hours) > 0
	vm.HasVideo = vm.YouTubeID != ""
	vm.HasAppointment = biz.Appointments.Enabled
	vm.HasFAQ = len(vm.FAQs) > 0
	vm.HasAmenities = len(vm.Amenities) > 0
	vm.HasMap = biz.MapLink != ""
	vm.HasSocial = biz.Social.Instagram != "" || biz.Social.Facebook != "" ||
		biz.Social.Website != ""
	return vm
}

// TruncateDescription cuts a description to at most 155 characters.  The
// cut is rune-based and word-boundary-agnostic, but stable for a given
// input.
func TruncateDescription(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= metaDescriptionMax {
		return s
	}
	return string(runes[:metaDescriptionMax-3]) + "..."
}

// Keywords assembles the keyword list from name, category, owner, and
// locality in that fixed order, skipping empties.
func Keywords(biz *business.Record) []string {
	out := make([]string, 0, 4)
	for _, k := range []string{biz.Name, string(biz.Category), biz.Owner, Locality(biz.Address)} {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Locality extracts the last comma-separated segment of an address, which
// for the common "street, area, city" shape is the city.
func Locality(address string) string {
	parts := strings.Split(address, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}

// ExtractYouTubeID pulls a video id out of a free-form URL.  Supported
// forms: youtu.be/ID, watch?v=ID, and embed/ID.  Returns "" when nothing
// matches; the caller then omits the video section entirely.
func ExtractYouTubeID(url string) string {
	m := youtubeRe.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractLatLng reads an "@lat,lng" pair out of an embedded map link,
// falling back to the fixed default location.
func ExtractLatLng(mapLink string) (lat, lng string) {
	m := latLngRe.FindStringSubmatch(mapLink)
	if m == nil {
		return defaultLat, defaultLng
	}
	// Validate both halves parse as floats; regex already guarantees shape.
	if _, err := strconv.ParseFloat(m[1], 64); err != nil {
		return defaultLat, defaultLng
	}
	if _, err := strconv.ParseFloat(m[2], 64); err != nil {
		return defaultLat, defaultLng
	}
	return m[1], m[2]
}

// buildFAQs generates question/answer pairs from record data.  Only
// questions whose underlying data exists are emitted.
func buildFAQs(biz *business.Record) []FAQ {
	var out []FAQ
	if len(biz.Hours) > 0 {
		out = append(out, FAQ{
			Question: "What are the opening hours of " + biz.Name + "?",
			Answer:   hoursSummary(biz.Hours),
		})
	}
	if biz.Address != "" {
		out = append(out, FAQ{
			Question: "Where is " + biz.Name + " located?",
			Answer:   biz.Address,
		})
	}
	if biz.Mobile != "" {
		out = append(out, FAQ{
			Question: "How can I contact " + biz.Name + "?",
			Answer:   "Call " + biz.Mobile + " or use the contact options on this page.",
		})
	}
	if biz.Appointments.Enabled {
		out = append(out, FAQ{
			Question: "Can I book an appointment online?",
			Answer:   "Yes, use the appointment form on this page to request a slot.",
		})
	}
	return out
}

// weekdayOrder fixes iteration order over the hours map so output stays
// deterministic.
var weekdayOrder = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// WeekdayLabels maps the stored lowercase keys to display names.
var WeekdayLabels = map[string]string{
	"monday": "Monday", "tuesday": "Tuesday", "wednesday": "Wednesday",
	"thursday": "Thursday", "friday": "Friday", "saturday": "Saturday",
	"sunday": "Sunday",
}

// Weekdays returns the stored hours in fixed weekday order, skipping days
// the record does not mention.
func Weekdays(hours business.HoursMap) []string {
	out := make([]string, 0, len(hours))
	for _, d := range weekdayOrder {
		if _, ok := hours[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// hoursSummary flattens opening hours into one sentence.
func hoursSummary(hours business.HoursMap) string {
	var parts []string
	for _, d := range Weekdays(hours) {
		h := hours[d]
		if !h.Open {
			continue
		}
		parts = append(parts, WeekdayLabels[d]+" "+h.Start+"-"+h.End)
	}
	if len(parts) == 0 {
		return "Currently closed."
	}
	return "Open " + strings.Join(parts, ", ") + "."
}

// buildAmenities derives the amenity chips from record data.
func buildAmenities(biz *business.Record) []string {
	var out []string
	if biz.WhatsApp != "" {
		out = append(out, "WhatsApp orders")
	}
	if biz.Appointments.Enabled {
		out = append(out, "Online appointments")
	}
	if biz.MapLink != "" {
		out = append(out, "Easy to find")
	}
	if biz.IsPremium {
		out = append(out, "Verified business")
	}
	return out
}
