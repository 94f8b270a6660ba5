// internal/slug/slug_test.go
//
// Unit-tests for slug derivation and allocation.
//
// Run: go test ./internal/slug -v

package slug

import (
	"context"
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A & B Shop", "abshop"},
		{"Joe's Café", "joescaf"},
		{"  lots   of   spaces  ", "lotsofspaces"},
		{"ALLCAPS123", "allcaps123"},
		{"--- !!! ---", "biz"},
		{"", "biz"},
		{"ab", "abbiz"},
		{strings.Repeat("x", 80), strings.Repeat("x", 50)},
	}
	for _, tc := range cases {
		got := Make(tc.in)
		if got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if !Valid(got) {
			t.Errorf("Make(%q) = %q is not a valid slug", tc.in, got)
		}
	}
}

func TestValid(t *testing.T) {
	for s, want := range map[string]bool{
		"abshop":   true,
		"abc":      true,
		"ab":       false,
		"has-dash": false,
		"Upper":    false,
		"über":     false,
		strings.Repeat("a", 50): true,
		strings.Repeat("a", 51): false,
	} {
		if got := Valid(s); got != want {
			t.Errorf("Valid(%q) = %v, want %v", s, got, want)
		}
	}
}

// fakeExists returns an ExistsFunc backed by a set of taken slugs.
func fakeExists(taken ...string) ExistsFunc {
	set := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		set[s] = struct{}{}
	}
	return func(_ context.Context, s string) (bool, error) {
		_, ok := set[s]
		return ok, nil
	}
}

func TestAllocatePrefersFreePreferred(t *testing.T) {
	a := &Allocator{Exists: fakeExists("abshop")}
	got, err := a.Allocate(context.Background(), "A & B Shop", "mystore")
	if err != nil {
		t.Fatal(err)
	}
	if got != "mystore" {
		t.Fatalf("got %q, want preferred slug", got)
	}
}

func TestAllocateIgnoresBadOrTakenPreferred(t *testing.T) {
	a := &Allocator{Exists: fakeExists("mystore")}

	// Taken preferred falls through to the derived base.
	got, err := a.Allocate(context.Background(), "A & B Shop", "mystore")
	if err != nil {
		t.Fatal(err)
	}
	if got != "abshop" {
		t.Fatalf("got %q, want derived base", got)
	}

	// Malformed preferred (uppercase) is ignored outright.
	got, err = a.Allocate(context.Background(), "A & B Shop", "My-Store")
	if err != nil {
		t.Fatal(err)
	}
	if got != "abshop" {
		t.Fatalf("got %q, want derived base", got)
	}
}

func TestAllocateSuffixLoop(t *testing.T) {
	a := &Allocator{Exists: fakeExists("abshop", "abshop1", "abshop2")}
	got, err := a.Allocate(context.Background(), "A & B Shop", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "abshop3" {
		t.Fatalf("got %q, want abshop3", got)
	}
}

func TestAllocateEmptyName(t *testing.T) {
	a := &Allocator{Exists: fakeExists("biz")}
	got, err := a.Allocate(context.Background(), "!!!", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "biz1" {
		t.Fatalf("got %q, want biz1", got)
	}
	if !Valid(got) {
		t.Fatalf("allocated slug %q is invalid", got)
	}
}

func TestSuggestSkipsTaken(t *testing.T) {
	a := &Allocator{Exists: fakeExists("abshop1", "abshop3")}
	got, err := a.Suggest(context.Background(), "abshop", 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"abshop2", "abshop4", "abshop5"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestWithSuffixRespectsMaxLen(t *testing.T) {
	base := strings.Repeat("a", 50)
	got := withSuffix(base, 12)
	if len(got) != 50 {
		t.Fatalf("len = %d, want 50", len(got))
	}
	if !strings.HasSuffix(got, "12") {
		t.Fatalf("suffix lost: %q", got)
	}
}
