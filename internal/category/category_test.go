// internal/category/category_test.go
//
// Unit-tests for category normalization.
//
// Run: go test ./internal/category -v

package category

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want Category
	}{
		{"exact match passes through", "Clinic", Clinic},
		{"lowercase alias", "clinic", Clinic},
		{"plural alias", "stores", Shop},
		{"cross-domain alias", "hospital", Clinic},
		{"whitespace trimmed", "  gym  ", Gym},
		{"unknown degrades to default", "spaceport", Default},
		{"empty string", "", Default},
		{"nil input", nil, Default},
		{"object wrapper category key", map[string]any{"category": "salon"}, Salon},
		{"object wrapper value key", map[string]any{"value": "Hotel"}, Hotel},
		{"object wrapper unknown key", map[string]any{"foo": "Hotel"}, Default},
		{"string map wrapper", map[string]string{"name": "bakery"}, Cafe},
		{"non-string payload", 42, Default},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// Applying Normalize to its own output must be a no-op for every member of
// the set and for every alias.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []any{"stores", "hospital", "Clinic", "spaceport", nil, "café"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %v: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeAlwaysValid(t *testing.T) {
	inputs := []any{"", "x", "SHOP", "shops", nil, map[string]any{}, 3.14}
	for _, in := range inputs {
		if got := Normalize(in); !Valid(got) {
			t.Fatalf("Normalize(%v) = %q is not in the closed set", in, got)
		}
	}
}
