// internal/cache/lru_test.go
//
// Unit-tests for the rendered-page LRU.
//
// Run: go test ./internal/cache -v

package cache

import "testing"

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewPages(2)
	c.Add("a", "doc-a")
	c.Add("b", "doc-b")

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should be cached")
	}
	c.Add("c", "doc-c")

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if got, ok := c.Get("a"); !ok || got != "doc-a" {
		t.Errorf("a lost or corrupted: %q %v", got, ok)
	}
	if c.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Len())
	}
}

func TestUpdateExistingKey(t *testing.T) {
	c := NewPages(2)
	c.Add("a", "v1")
	c.Add("a", "v2")

	if got, _ := c.Get("a"); got != "v2" {
		t.Errorf("got %q, want the updated document", got)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

// Capacity 0 is a documented configuration value meaning "no caching";
// it must not panic and must never retain entries.
func TestZeroCapacityDisablesCaching(t *testing.T) {
	c := NewPages(0)
	c.Add("a", "doc-a")

	if _, ok := c.Get("a"); ok {
		t.Error("disabled cache must always miss")
	}
	if c.Len() != 0 {
		t.Errorf("len = %d, want 0", c.Len())
	}

	// Negative values behave the same.
	c = NewPages(-3)
	c.Add("a", "doc-a")
	if _, ok := c.Get("a"); ok {
		t.Error("negative capacity must disable caching too")
	}
}
