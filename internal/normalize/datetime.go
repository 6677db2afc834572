package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/juancuellarsol/ogilvy/internal/profile"
	"github.com/juancuellarsol/ogilvy/internal/table"
)

// sampleSize bounds how many values the auto-detect strategy inspects.
const sampleSize = 50

// Timestamp is a parsed point in time. Valid is false for Missing.
// Zoned is set when the source value carried an explicit offset.
type Timestamp struct {
	Time  time.Time
	Valid bool
	Zoned bool
}

// MissingTimestamp is the zero Timestamp.
var MissingTimestamp = Timestamp{}

// Naive builds a zone-naive timestamp from a wall clock reading.
func Naive(year int, month time.Month, day, hour, min, sec int) Timestamp {
	return Timestamp{Time: time.Date(year, month, day, hour, min, sec, 0, time.UTC), Valid: true}
}

// Parser turns a raw column into timestamps. It works on whole columns
// because some strategies decide on a sample of the values.
type Parser interface {
	ParseColumn(values []table.Value) []Timestamp
}

// NewParser returns the parser for a single-column profile.
func NewParser(p profile.Profile, dayFirst bool) Parser {
	switch p.Strategy {
	case profile.AutoDetect:
		return &autoDetectParser{dayFirst: dayFirst}
	case profile.SplitDateTime:
		return &layoutParser{layouts: []string{p.DateOnlyLayout}}
	default:
		return &localeParser{dayFirst: dayFirst}
	}
}

var meridiemPattern = regexp.MustCompile(`(?i)(\d)\s*([ap])\.?\s*m\.?\s*$`)

// NormalizeMeridiem rewrites trailing markers such as "p.m.", "a. m." or
// "pm" to " PM"/" AM" and collapses repeated spaces.
func NormalizeMeridiem(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return meridiemPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := meridiemPattern.FindStringSubmatch(m)
		if strings.EqualFold(sub[2], "p") {
			return sub[1] + " PM"
		}
		return sub[1] + " AM"
	})
}

var (
	dayFirstSlash = []string{
		"2/1/2006 3:04:05 PM",
		"2/1/2006 15:04:05",
		"2/1/2006",
	}
	monthFirstSlash = []string{
		"1/2/2006 3:04:05 PM",
		"1/2/2006 15:04:05",
		"1/2/2006",
	}
	isoLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	zonedLayouts = []string{
		time.RFC3339,
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02 15:04:05 -0700",
		"2006-01-02 15:04:05 -0700 MST",
	}

	genericDayFirst = []string{
		"2/1/2006 3:04:05 PM", "2/1/2006 3:04 PM", "2/1/2006 15:04:05", "2/1/2006 15:04", "2/1/2006",
		"2-1-2006 3:04:05 PM", "2-1-2006 15:04:05", "2-1-2006 15:04", "2-1-2006",
	}
	genericMonthFirst = []string{
		"1/2/2006 3:04:05 PM", "1/2/2006 3:04 PM", "1/2/2006 15:04:05", "1/2/2006 15:04", "1/2/2006",
		"1-2-2006 3:04:05 PM", "1-2-2006 15:04:05", "1-2-2006 15:04", "1-2-2006",
	}
	genericCommon = []string{
		"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02 3:04:05 PM", "2006-01-02",
		"2006/01/02 15:04:05", "2006/01/02",
		"2.1.2006 15:04:05", "2.1.2006 15:04", "2.1.2006",
		"Jan 2, 2006 3:04:05 PM", "Jan 2, 2006 15:04:05", "Jan 2, 2006", "2 Jan 2006 15:04", "2 Jan 2006",
	}
)

// parseLayout parses s with one layout, discarding sub-second precision.
func parseLayout(layout, s string) (Timestamp, bool) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return MissingTimestamp, false
	}
	return Timestamp{Time: t.Truncate(time.Second), Valid: true}, true
}

// ParseGeneric tries the known layouts in order. Slash and dash dates are
// read day-first or month-first as requested; a reading that produces an
// impossible calendar date fails instead of being swapped.
func ParseGeneric(s string, dayFirst bool) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return MissingTimestamp
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t.Truncate(time.Second), Valid: true, Zoned: true}
		}
	}
	ordered := genericMonthFirst
	if dayFirst {
		ordered = genericDayFirst
	}
	for _, group := range [][]string{ordered, genericCommon} {
		for _, layout := range group {
			if ts, ok := parseLayout(layout, s); ok {
				return ts
			}
		}
	}
	return MissingTimestamp
}

// fromSerial converts a spreadsheet serial date.
func fromSerial(v table.Value) (Timestamp, bool) {
	if v.Kind() != table.KindNumber {
		return MissingTimestamp, false
	}
	f, _ := v.Float()
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return MissingTimestamp, true
	}
	t = t.Round(time.Second)
	return Timestamp{Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), Valid: true}, true
}

func cleanText(v table.Value) string {
	if v.IsMissing() {
		return ""
	}
	return NormalizeMeridiem(strings.TrimSpace(v.Text()))
}

// localeParser makes a single generic attempt per value after meridiem
// normalization.
type localeParser struct {
	dayFirst bool
}

func (p *localeParser) ParseColumn(values []table.Value) []Timestamp {
	out := make([]Timestamp, len(values))
	for i, v := range values {
		if ts, ok := fromSerial(v); ok {
			out[i] = ts
			continue
		}
		out[i] = ParseGeneric(cleanText(v), p.dayFirst)
	}
	return out
}

// layoutParser accepts exactly one of a fixed set of layouts.
type layoutParser struct {
	layouts []string
}

func (p *layoutParser) ParseColumn(values []table.Value) []Timestamp {
	out := make([]Timestamp, len(values))
	for i, v := range values {
		if ts, ok := fromSerial(v); ok {
			out[i] = ts
			continue
		}
		s := cleanText(v)
		for _, layout := range p.layouts {
			if ts, ok := parseLayout(layout, s); ok {
				out[i] = ts
				break
			}
		}
	}
	return out
}

// autoDetectParser picks slash or ISO layouts from a sample of the column.
type autoDetectParser struct {
	dayFirst bool
}

// Convention is the separator style detected in a sample.
type Convention int

const (
	ConventionGeneric Convention = iota
	ConventionSlash
	ConventionDash
)

// DetectConvention inspects up to the first 50 non-empty values.
func DetectConvention(texts []string) Convention {
	var n, slash, dash int
	for _, s := range texts {
		if s == "" {
			continue
		}
		n++
		if strings.Contains(s, "/") {
			slash++
		}
		if strings.Contains(s, "-") {
			dash++
		}
		if n == sampleSize {
			break
		}
	}
	if n == 0 {
		return ConventionGeneric
	}
	slashMajority := float64(slash)/float64(n) > 0.5
	dashMajority := float64(dash)/float64(n) > 0.5
	switch {
	case slashMajority && !dashMajority:
		return ConventionSlash
	case dashMajority:
		return ConventionDash
	default:
		return ConventionGeneric
	}
}

func (p *autoDetectParser) ParseColumn(values []table.Value) []Timestamp {
	out := make([]Timestamp, len(values))
	texts := make([]string, len(values))
	serial := make([]bool, len(values))
	for i, v := range values {
		if ts, ok := fromSerial(v); ok {
			out[i] = ts
			serial[i] = true
			continue
		}
		texts[i] = cleanText(v)
	}

	var layouts []string
	fallbackDayFirst := false
	switch DetectConvention(texts) {
	case ConventionSlash:
		layouts = monthFirstSlash
		if p.dayFirst {
			layouts = dayFirstSlash
		}
		fallbackDayFirst = p.dayFirst
	case ConventionDash:
		layouts = isoLayouts
	}

	for _, layout := range layouts {
		parsed := make([]Timestamp, len(values))
		hits := 0
		for i, s := range texts {
			if serial[i] || s == "" {
				continue
			}
			if ts, ok := parseLayout(layout, s); ok {
				parsed[i] = ts
				hits++
			}
		}
		if hits > 0 {
			for i := range parsed {
				if !serial[i] {
					out[i] = parsed[i]
				}
			}
			return out
		}
	}

	for i, s := range texts {
		if !serial[i] {
			out[i] = ParseGeneric(s, fallbackDayFirst)
		}
	}
	return out
}

// ParseSplit joins a date and a time column with a single space and parses
// the result with layout. A layout with seconds is tried second so that
// "06:28:15" still parses.
func ParseSplit(dates, times []table.Value, layout string) []Timestamp {
	out := make([]Timestamp, len(dates))
	for i := range dates {
		var tv table.Value
		if i < len(times) {
			tv = times[i]
		}
		d := splitPart(dates[i], "2.1.2006")
		tm := splitPart(tv, "15:04:05")
		if d == "" || tm == "" {
			continue
		}
		s := d + " " + tm
		if ts, ok := parseLayout(layout, s); ok {
			out[i] = ts
		} else if ts, ok := parseLayout(layout+":05", s); ok {
			out[i] = ts
		}
	}
	return out
}

// splitPart renders one half of a split timestamp. Spreadsheet cells may
// hold a serial number instead of text; those are rendered with format.
func splitPart(v table.Value, format string) string {
	if v.Kind() == table.KindNumber {
		f, _ := v.Float()
		t, err := excelize.ExcelDateToTime(f, false)
		if err != nil {
			return ""
		}
		return t.Round(time.Second).Format(format)
	}
	return strings.TrimSpace(strings.Join(strings.Fields(v.Text()), " "))
}
