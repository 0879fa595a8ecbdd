package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to fallback and then DefaultTimezone.
func Location(tz string, fallback ...string) *time.Location {
	candidates := append([]string{tz}, fallback...)
	for _, c := range candidates {
		if IsValid(c) {
			if loc, err := time.LoadLocation(c); err == nil {
				return loc
			}
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock supplies the current instant. Use cases take one so tests can pin
// "today" and the lead-time cutoff.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}

func NowIn(clock Clock, loc *time.Location) time.Time {
	if clock == nil {
		clock = SystemClock
	}
	return clock().In(loc)
}
