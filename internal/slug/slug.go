// internal/slug/slug.go
//
// Slug derivation and allocation.
//
// Context
// -------
// Every business gets one slug that forms its public subdomain and
// subdirectory URLs.  A slug is lowercase alphanumeric only, 3 to 50
// characters, no separators, globally unique, and immutable once assigned.
// Slugs are never reused after deletion so external links cannot be
// hijacked by a later registrant.
//
// Rules (Make)
// ------------
// 1. Lower-case everything.
// 2. Drop every character outside [a-z0-9].  That strips spaces,
//    punctuation, emoji, and non-ASCII.
// 3. Truncate to 50 characters.
// 4. If the result is empty or shorter than 3, append the fixed token
//    "biz" so the numeric-suffix loop always starts from a valid base.
//
// Allocation
// ----------
// The existence pre-check here is an optimization only.  The UNIQUE KEY on
// businesses.slug is the source of truth; the caller retries allocation
// when its insert is rejected as a conflict (see internal/site).
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package slug

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

const (
	minLen = 3
	maxLen = 50

	// fallback keeps the suffix loop alive when a name strips to nothing.
	fallback = "biz"
)

var pattern = regexp.MustCompile(`^[a-z0-9]{3,50}$`)

// Valid reports whether s is a well-formed slug.
func Valid(s string) bool { return pattern.MatchString(s) }

// Make derives a valid base slug from arbitrary text.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	s := b.String()
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	if len(s) < minLen {
		s += fallback
	}
	return s
}

// ExistsFunc answers whether a slug is already taken.  Implemented by the
// business store; injected here so the allocator stays free of SQL.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Allocator finds available slugs against a live existence check.
type Allocator struct {
	Exists ExistsFunc
}

// Allocate returns an available slug for candidateName.  A well-formed,
// untaken preferred slug wins verbatim; otherwise the derived base gets an
// increasing numeric suffix until a free slug is found.  The returned slug
// may still lose the insert race; callers must treat a storage conflict as
// a cue to call Allocate again.
func (a *Allocator) Allocate(ctx context.Context, candidateName, preferred string) (string, error) {
	if preferred != "" && Valid(preferred) {
		taken, err := a.Exists(ctx, preferred)
		if err != nil {
			return "", err
		}
		if !taken {
			return preferred, nil
		}
	}

	base := Make(candidateName)
	taken, err := a.Exists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for n := 1; ; n++ {
		cand := withSuffix(base, n)
		taken, err := a.Exists(ctx, cand)
		if err != nil {
			return "", err
		}
		if !taken {
			return cand, nil
		}
	}
}

// Suggest returns up to n available numeric-suffixed alternatives for a
// taken slug.  Nothing is reserved; availability is advisory UX only.
func (a *Allocator) Suggest(ctx context.Context, taken string, n int) ([]string, error) {
	base := Make(taken)
	out := make([]string, 0, n)
	for i := 1; len(out) < n && i <= n*10; i++ {
		cand := withSuffix(base, i)
		exists, err := a.Exists(ctx, cand)
		if err != nil {
			return nil, err
		}
		if !exists {
			out = append(out, cand)
		}
	}
	return out, nil
}

// withSuffix appends n to base, trimming the base so the result stays
// within the 50-character limit.
func withSuffix(base string, n int) string {
	suffix := strconv.Itoa(n)
	if len(base)+len(suffix) > maxLen {
		base = base[:maxLen-len(suffix)]
	}
	return base + suffix
}
