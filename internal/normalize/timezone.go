package normalize

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
)

// Zones holds the optional source and destination time zones.
type Zones struct {
	From *time.Location
	To   *time.Location
}

// LoadZones resolves zone names against the time zone database. An unknown
// name, or a missing database, is a configuration error.
func LoadZones(from, to string) (Zones, error) {
	var z Zones
	var err error
	if z.From, err = loadZone("tz-from", from); err != nil {
		return Zones{}, err
	}
	if z.To, err = loadZone("tz-to", to); err != nil {
		return Zones{}, err
	}
	return z, nil
}

func loadZone(flag, name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("%s: unknown time zone %q", flag, name), err).
			WithContext("zone", name)
	}
	return loc, nil
}

// Enabled reports whether any conversion is configured.
func (z Zones) Enabled() bool {
	return z.From != nil || z.To != nil
}

// Apply localizes and converts ts, then strips the zone. Wall times that do
// not exist or occur twice in the source zone become Missing. Converting a
// zone-naive value with no source zone is a configuration error. With no
// zones configured, zone-aware values are reduced to their UTC wall clock.
func (z Zones) Apply(ts Timestamp) (Timestamp, error) {
	if !ts.Valid {
		return ts, nil
	}
	if !z.Enabled() {
		if ts.Zoned {
			return Timestamp{Time: stripZone(ts.Time.UTC()), Valid: true}, nil
		}
		return ts, nil
	}
	t := ts.Time
	zoned := ts.Zoned
	if z.From != nil {
		if zoned {
			t = t.In(z.From)
		} else {
			inst, ok := Localize(t, z.From)
			if !ok {
				return MissingTimestamp, nil
			}
			t = inst
			zoned = true
		}
	}
	if z.To != nil {
		if !zoned {
			return MissingTimestamp, apperrors.NewConfigError(
				"tz-to needs zone information: set tz-from or use zone-aware source values", nil)
		}
		t = t.In(z.To)
	}
	return Timestamp{Time: stripZone(t), Valid: true}, nil
}

// Localize interprets the wall clock of wall in loc. It reports false when
// the wall time falls in a DST gap or overlap.
func Localize(wall time.Time, loc *time.Location) (time.Time, bool) {
	u := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), 0, time.UTC)

	offsets := make(map[int]struct{}, 2)
	for _, shift := range []time.Duration{-24 * time.Hour, 0, 24 * time.Hour} {
		_, off := u.Add(shift).In(loc).Zone()
		offsets[off] = struct{}{}
	}

	var matches []time.Time
	for off := range offsets {
		cand := u.Add(-time.Duration(off) * time.Second).In(loc)
		if sameWallClock(cand, u) {
			matches = append(matches, cand)
		}
	}
	if len(matches) != 1 {
		return time.Time{}, false
	}
	return matches[0], true
}

func sameWallClock(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day() &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}

func stripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
