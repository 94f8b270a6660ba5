// internal/category/category.go
//
// Category normalization.
//
// Context
// -------
// Registration payloads arrive with category as free text, sometimes as a
// bare string, sometimes wrapped in an object by older clients.  The store
// persists categories into a closed ENUM column, so every write path must
// funnel through Normalize first.  Normalize never fails: an input we do
// not recognise degrades to the default category instead of blocking the
// registration flow.
//
// Rules
// -----
//  1. Object input is unwrapped via the conventional keys.
//  2. Exact match against the valid set (original casing) passes through.
//  3. The trimmed, lowercased key is looked up in a synonym table covering
//     plurals, alternate spellings, and cross-domain aliases.
//  4. Anything else becomes Other.
//
// Notes
// -----
// • Normalize(Normalize(x)) == Normalize(x) for every input.
// • Oxford commas, two spaces after periods.
package category

import "strings"

// Category is one member of the closed set persisted to the businesses
// table.  Values carry their canonical casing.
type Category string

const (
	Restaurant Category = "Restaurant"
	Cafe       Category = "Cafe"
	Shop       Category = "Shop"
	Salon      Category = "Salon"
	Clinic     Category = "Clinic"
	Gym        Category = "Gym"
	Hotel      Category = "Hotel"
	Education  Category = "Education"
	Services   Category = "Services"
	Other      Category = "Other"
)

// Default is what unrecognised input degrades to.
const Default = Other

// All lists every valid category in display order.
var All = []Category{
	Restaurant, Cafe, Shop, Salon, Clinic, Gym, Hotel, Education, Services, Other,
}

var valid = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(All))
	for _, c := range All {
		m[c] = struct{}{}
	}
	return m
}()

// synonyms maps lowercased aliases to their canonical category.  Plurals,
// alternate spellings, and cross-domain aliases collected from production
// inputs.
var synonyms = map[string]Category{
	"restaurant":  Restaurant,
	"restaurants": Restaurant,
	"resturant":   Restaurant,
	"food":        Restaurant,
	"dining":      Restaurant,
	"eatery":      Restaurant,
	"cafe":        Cafe,
	"cafes":       Cafe,
	"café":        Cafe,
	"coffee":      Cafe,
	"coffee shop": Cafe,
	"bakery":      Cafe,
	"shop":        Shop,
	"shops":       Shop,
	"store":       Shop,
	"stores":      Shop,
	"retail":      Shop,
	"boutique":    Shop,
	"market":      Shop,
	"salon":       Salon,
	"salons":      Salon,
	"saloon":      Salon,
	"barber":      Salon,
	"barbershop":  Salon,
	"spa":         Salon,
	"parlour":     Salon,
	"clinic":      Clinic,
	"clinics":     Clinic,
	"hospital":    Clinic,
	"doctor":      Clinic,
	"dental":      Clinic,
	"dentist":     Clinic,
	"pharmacy":    Clinic,
	"gym":         Gym,
	"gyms":        Gym,
	"fitness":     Gym,
	"yoga":        Gym,
	"hotel":       Hotel,
	"hotels":      Hotel,
	"motel":       Hotel,
	"lodge":       Hotel,
	"guest house": Hotel,
	"education":   Education,
	"school":      Education,
	"schools":     Education,
	"college":     Education,
	"academy":     Education,
	"coaching":    Education,
	"tuition":     Education,
	"service":     Services,
	"services":    Services,
	"repair":      Services,
	"plumber":     Services,
	"electrician": Services,
	"agency":      Services,
	"other":       Other,
	"others":      Other,
	"misc":        Other,
	"general":     Other,
}

// Normalize maps arbitrary category input to a member of the closed set.
// Input may be a string, a Category, an object carrying the value under a
// conventional key, or nil.  It never fails.
func Normalize(raw any) Category {
	s := unwrap(raw)

	s = strings.TrimSpace(s)
	if s == "" {
		return Default
	}

	// Exact match on canonical casing passes through unchanged.
	if _, ok := valid[Category(s)]; ok {
		return Category(s)
	}

	if c, ok := synonyms[strings.ToLower(s)]; ok {
		return c
	}
	return Default
}

// Valid reports whether c is a member of the closed set as-is.
func Valid(c Category) bool {
	_, ok := valid[c]
	return ok
}

// unwrap pulls a string out of object-shaped input.  Older clients send
// {"category": "..."} or {"value": "..."} instead of a bare string.
func unwrap(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case Category:
		return string(v)
	case map[string]any:
		for _, key := range []string{"category", "value", "name", "label"} {
			if inner, ok := v[key]; ok {
				if s, ok := inner.(string); ok {
					return s
				}
			}
		}
		return ""
	case map[string]string:
		for _, key := range []string{"category", "value", "name", "label"} {
			if s, ok := v[key]; ok {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}
