package cache

import "testing"

func TestDeriveKeyDeterministic(t *testing.T) {
	k1 := DeriveKey("session-1", "hello world")
	k2 := DeriveKey("session-1", "hello world")

	if k1 != k2 {
		t.Errorf("Expected identical keys, got %q and %q", k1, k2)
	}
	if len(k1) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(k1))
	}
}

func TestDeriveKeyTrimsWhitespace(t *testing.T) {
	base := DeriveKey("session-1", "hello")

	tests := []struct {
		name   string
		prompt string
	}{
		{"leading spaces", "   hello"},
		{"trailing spaces", "hello   "},
		{"both", "  hello  "},
		{"newlines", "\nhello\n"},
		{"tabs", "\thello\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveKey("session-1", tt.prompt); got != base {
				t.Errorf("Expected %q to share key with %q", tt.prompt, "hello")
			}
		})
	}
}

func TestDeriveKeyDistinct(t *testing.T) {
	tests := []struct {
		name             string
		sessionA, prompA string
		sessionB, prompB string
	}{
		{"different prompts", "s1", "hello", "s1", "world"},
		{"different sessions", "s1", "hello", "s2", "hello"},
		{"interior whitespace preserved", "s1", "hello world", "s1", "hello  world"},
		{"case sensitive", "s1", "Hello", "s1", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := DeriveKey(tt.sessionA, tt.prompA)
			b := DeriveKey(tt.sessionB, tt.prompB)
			if a == b {
				t.Errorf("Expected distinct keys for (%q,%q) and (%q,%q)",
					tt.sessionA, tt.prompA, tt.sessionB, tt.prompB)
			}
		})
	}
}

func TestKeyPrefixes(t *testing.T) {
	hash := DeriveKey("s1", "hello")

	if got := CacheKey(hash); got != "cache:"+hash {
		t.Errorf("Expected cache:%s, got %s", hash, got)
	}
	if got := HitsKey(hash); got != "hits:"+hash {
		t.Errorf("Expected hits:%s, got %s", hash, got)
	}
}
