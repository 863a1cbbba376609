package recoder

import (
	"sync"
	"testing"

	"github.com/recoderlab/recoder/engine"
)

// The enumeration primitive must run exactly once per catalog no matter how
// often the listing is requested.
func TestListEncodingsCached(t *testing.T) {
	calls := 0
	c := &Catalog{enum: func(yield func(group []string) bool) {
		calls++
		engine.Encodings(yield)
	}}

	first := c.ListEncodings()
	second := c.ListEncodings()
	if calls != 1 {
		t.Errorf("enumeration ran %d times, want 1", calls)
	}
	if len(first) == 0 {
		t.Fatal("no encoding groups listed")
	}
	if &first[0] != &second[0] {
		t.Error("second call returned a different backing array")
	}
}

// Concurrent first callers must not race to populate the cache twice; every
// caller gets the same listing from a single enumeration.
func TestListEncodingsConcurrentFirstCallers(t *testing.T) {
	calls := 0
	c := &Catalog{enum: func(yield func(group []string) bool) {
		calls++
		engine.Encodings(yield)
	}}

	const numGoroutines = 32
	results := make([][][]string, numGoroutines)
	var wg sync.WaitGroup
	for g := 0; g < numGoroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			results[id] = c.ListEncodings()
		}(g)
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("enumeration ran %d times, want 1", calls)
	}
	for id, got := range results {
		if len(got) == 0 {
			t.Fatalf("goroutine %d got an empty listing", id)
		}
		if &got[0] != &results[0][0] {
			t.Errorf("goroutine %d got a different backing array", id)
		}
	}
}

func TestListEncodingsGroups(t *testing.T) {
	groups := ListEncodings()
	if len(groups) == 0 {
		t.Fatal("no encoding groups listed")
	}
	for _, group := range groups {
		if len(group) == 0 {
			t.Fatal("empty encoding group")
		}
		for _, name := range group {
			if got := CanonicalName(name); got != group[0] {
				t.Errorf("CanonicalName(%q) = %q, want the group head %q", name, got, group[0])
			}
		}
	}
}

func TestListEncodingsContainsCommonNames(t *testing.T) {
	found := map[string]bool{}
	for _, group := range ListEncodings() {
		found[group[0]] = true
	}
	for _, want := range []string{"UTF-8", "Shift_JIS", "EUC-JP", "ISO-2022-JP", "Macintosh"} {
		if !found[want] {
			t.Errorf("canonical name %q missing from the listing", want)
		}
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sjis", "Shift_JIS"},
		{"utf8", "UTF-8"},
		{"MACROMAN", "Macintosh"},
		{"cp932", "Shift_JIS"},
		{"latin1", "ISO-8859-1"},
		{"NOT-A-REAL-ENCODING", "NOT-A-REAL-ENCODING"},
	}
	for _, tt := range tests {
		if got := CanonicalName(tt.in); got != tt.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSupported(t *testing.T) {
	if !Supported("SJIS") {
		t.Error("Supported(SJIS) = false")
	}
	if Supported("NOT-A-REAL-ENCODING") {
		t.Error("Supported(NOT-A-REAL-ENCODING) = true")
	}
}
