package timeutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	ref := time.Date(2024, 5, 10, 18, 42, 7, 0, Location())
	start := StartOfDay(ref)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("StartOfDay = %v, want local midnight", start)
	}
	if start.Year() != 2024 || start.Month() != time.May || start.Day() != 10 {
		t.Fatalf("StartOfDay = %v, wrong day", start)
	}
}

func TestEndOfDayIsNextMidnight(t *testing.T) {
	ref := time.Date(2024, 5, 10, 3, 0, 0, 0, Location())
	if got, want := EndOfDay(ref), StartOfDay(ref).AddDate(0, 0, 1); !got.Equal(want) {
		t.Fatalf("EndOfDay = %v, want %v", got, want)
	}
}

func TestStartOfDayConvertsToBusinessZone(t *testing.T) {
	// 02:00 UTC can still be the previous local day in a western zone.
	ref := time.Date(2024, 5, 10, 2, 0, 0, 0, time.UTC)
	start := StartOfDay(ref)
	if start.Location() != Location() {
		t.Fatalf("StartOfDay location = %v, want business zone", start.Location())
	}
	if !ref.After(start) || ref.After(EndOfDay(ref)) {
		t.Fatalf("ref %v not inside [%v, %v)", ref, start, EndOfDay(ref))
	}
}

func TestSetLocationIgnoresUnknownZone(t *testing.T) {
	before := Location()
	SetLocation("Not/AZone")
	if Location() != before {
		t.Fatalf("unknown zone must not change the business location")
	}
	SetLocation("")
	if Location() != before {
		t.Fatalf("empty name must not change the business location")
	}
}
