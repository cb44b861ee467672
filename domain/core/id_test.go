package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseReportID tests report ID parsing
func TestParseReportID(t *testing.T) {
	generated := NewReportID()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"generated", generated.String(), false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"not a uuid", "report-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReportID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseReportID(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReportID(%q) unexpected error: %v", tt.input, err)
			}
			if got != generated {
				t.Errorf("ParseReportID(%q) = %q", tt.input, got)
			}
		})
	}
}

// TestHashShort tests hash truncation and determinism
func TestHashShort(t *testing.T) {
	a := NewHash([]byte("age,height"))
	b := NewHash([]byte("age,height"))
	if !a.Equals(b) {
		t.Fatalf("Expected identical input to hash identically")
	}
	if len(a.Short()) != 12 {
		t.Errorf("Expected 12 character short hash, got %q", a.Short())
	}
	if Hash("abc").Short() != "abc" {
		t.Errorf("Expected short hash of short input to be unchanged")
	}
}
