package ids

import (
	"encoding/hex"
	"testing"
)

func TestNew(t *testing.T) {
	id, err := New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if len(id) != 16 {
		t.Fatalf("expected 16-char hex id, got %d", len(id))
	}
	if _, err := hex.DecodeString(id); err != nil {
		t.Fatalf("expected hex id, got error: %v", err)
	}
	if Short(id) != id[:ShortLen] {
		t.Fatalf("Short(%q) = %q", id, Short(id))
	}
	if Short("abc") != "abc" {
		t.Fatalf("Short must not pad")
	}
}

func TestNewUnique(t *testing.T) {
	seen := map[string]bool{}
	for range 200 {
		id, err := New()
		if err != nil {
			t.Fatalf("New error: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
