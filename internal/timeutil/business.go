package timeutil

import (
	"time"
)

// business is the timezone all day-windowed reporting uses. Defaults to
// America/Bogota and can be overridden at startup via SetLocation.
var business *time.Location

func init() {
	var err error
	business, err = time.LoadLocation("America/Bogota")
	if err != nil {
		// Fallback: fixed UTC-5 if the tzdata is unavailable
		business = time.FixedZone("COT", -5*60*60)
	}
}

// SetLocation overrides the business timezone (called once from config load).
func SetLocation(name string) {
	if name == "" {
		return
	}
	if loc, err := time.LoadLocation(name); err == nil {
		business = loc
	}
}

// Location returns the business timezone.
func Location() *time.Location {
	return business
}

// Now returns the current time in the business timezone.
func Now() time.Time {
	return time.Now().In(business)
}

// StartOfDay returns local midnight for the given time.
func StartOfDay(t time.Time) time.Time {
	lt := t.In(business)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, business)
}

// EndOfDay returns the exclusive end of the local day (next midnight).
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}
