package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juancuellarsol/ogilvy/internal/profile"
	"github.com/juancuellarsol/ogilvy/internal/table"
)

func textValues(values ...string) []table.Value {
	out := make([]table.Value, len(values))
	for i, v := range values {
		out[i] = table.String(v)
	}
	return out
}

func TestNormalizeMeridiem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "9/5/2025 6:05:00 p.m.", want: "9/5/2025 6:05:00 PM"},
		{in: "9/5/2025 6:05:00 a. m.", want: "9/5/2025 6:05:00 AM"},
		{in: "9/5/2025 6:05:00 P.M", want: "9/5/2025 6:05:00 PM"},
		{in: "9/5/2025 6:05:00pm", want: "9/5/2025 6:05:00 PM"},
		{in: "9/5/2025  6:05:00   AM", want: "9/5/2025 6:05:00 AM"},
		{in: "2025-09-05 18:05:00", want: "2025-09-05 18:05:00"},
		{in: "Sam", want: "Sam"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMeridiem(tt.in))
		})
	}
}

func TestParseGeneric(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		dayFirst bool
		want     Timestamp
	}{
		{name: "month first with meridiem", in: "9/5/2025 6:05:00 PM", want: Naive(2025, 9, 5, 18, 5, 0)},
		{name: "day first with meridiem", in: "21/09/2025 8:00:00 AM", dayFirst: true, want: Naive(2025, 9, 21, 8, 0, 0)},
		{name: "impossible month is rejected not swapped", in: "21/09/2025 8:00:00 AM", dayFirst: false, want: MissingTimestamp},
		{name: "iso", in: "2025-09-21 08:15:30", want: Naive(2025, 9, 21, 8, 15, 30)},
		{name: "iso fractional seconds dropped", in: "2025-09-21T08:15:30.987", want: Naive(2025, 9, 21, 8, 15, 30)},
		{name: "dotted", in: "22.09.2025 06:28", want: Naive(2025, 9, 22, 6, 28, 0)},
		{name: "date only", in: "9/5/2025", want: Naive(2025, 9, 5, 0, 0, 0)},
		{name: "garbage", in: "not a date", want: MissingTimestamp},
		{name: "empty", in: "", want: MissingTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGeneric(tt.in, tt.dayFirst))
		})
	}
}

func TestParseGeneric_Zoned(t *testing.T) {
	ts := ParseGeneric("2025-09-21T08:15:30-05:00", false)
	require.True(t, ts.Valid)
	assert.True(t, ts.Zoned)
	assert.Equal(t, time.Date(2025, 9, 21, 13, 15, 30, 0, time.UTC), ts.Time.UTC())
}

func TestLocaleParser(t *testing.T) {
	p := NewParser(profile.MustGet(profile.Sprinklr), false)

	got := p.ParseColumn(append(textValues("9/5/2025 6:05:00 p.m.", "basura"), table.Missing()))

	require.Len(t, got, 3)
	assert.Equal(t, Naive(2025, 9, 5, 18, 5, 0), got[0])
	assert.False(t, got[1].Valid)
	assert.False(t, got[2].Valid)
}

func TestAutoDetectParser(t *testing.T) {
	tubular := profile.MustGet(profile.Tubular)

	tests := []struct {
		name     string
		values   []table.Value
		dayFirst bool
		want     []Timestamp
	}{
		{
			name:     "slash majority is day first",
			values:   textValues("21/09/2025 8:00:00 AM", "1/10/2025 11:30:00 PM", "oops"),
			dayFirst: true,
			want:     []Timestamp{Naive(2025, 9, 21, 8, 0, 0), Naive(2025, 10, 1, 23, 30, 0), MissingTimestamp},
		},
		{
			name:     "slash majority 24h layout",
			values:   textValues("21/09/2025 20:07:00", "22/09/2025 06:00:00"),
			dayFirst: true,
			want:     []Timestamp{Naive(2025, 9, 21, 20, 7, 0), Naive(2025, 9, 22, 6, 0, 0)},
		},
		{
			name:     "slash date only",
			values:   textValues("21/09/2025", "3/10/2025"),
			dayFirst: true,
			want:     []Timestamp{Naive(2025, 9, 21, 0, 0, 0), Naive(2025, 10, 3, 0, 0, 0)},
		},
		{
			name:     "dash majority is iso",
			values:   textValues("2025-09-05 18:05:00", "2025-10-01 07:00:00"),
			dayFirst: true,
			want:     []Timestamp{Naive(2025, 9, 5, 18, 5, 0), Naive(2025, 10, 1, 7, 0, 0)},
		},
		{
			name:     "dash with T separator",
			values:   textValues("2025-09-05T18:05:00"),
			dayFirst: true,
			want:     []Timestamp{Naive(2025, 9, 5, 18, 5, 0)},
		},
		{
			name:     "no dominant separator",
			values:   textValues("22.09.2025 06:28", "Sep 5, 2025"),
			dayFirst: true,
			want:     []Timestamp{Naive(2025, 9, 22, 6, 28, 0), Naive(2025, 9, 5, 0, 0, 0)},
		},
		{
			name:     "spreadsheet serial",
			values:   []table.Value{table.Number(45910.75)},
			dayFirst: true,
			want:     []Timestamp{Naive(2025, 9, 10, 18, 0, 0)},
		},
		{
			name:     "entirely unparseable column",
			values:   textValues("a/b", "c/d"),
			dayFirst: true,
			want:     []Timestamp{MissingTimestamp, MissingTimestamp},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewParser(tubular, tt.dayFirst).ParseColumn(tt.values)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectConvention(t *testing.T) {
	assert.Equal(t, ConventionSlash, DetectConvention([]string{"1/2/2025", "3/4/2025", "2025-01-01"}))
	assert.Equal(t, ConventionDash, DetectConvention([]string{"2025-01-01", "2025-01-02", "1/2/2025"}))
	assert.Equal(t, ConventionGeneric, DetectConvention([]string{"22.09.2025", "", "23.09.2025"}))
	assert.Equal(t, ConventionGeneric, DetectConvention(nil))

	// only the first 50 non-empty values are sampled
	sample := make([]string, 0, 120)
	for i := 0; i < 50; i++ {
		sample = append(sample, "2025-01-01")
	}
	for i := 0; i < 70; i++ {
		sample = append(sample, "1/2/2025")
	}
	assert.Equal(t, ConventionDash, DetectConvention(sample))
}

func TestParseSplit(t *testing.T) {
	youscan := profile.MustGet(profile.YouScan)

	dates := append(textValues("22.09.2025", "1.10.2025", "22.09.2025", "bad"), table.Missing(), table.Number(45922))
	times := append(textValues("06:28", "23:59:10", "", "10:00"), table.String("10:00"), table.Number(0.25))

	got := ParseSplit(dates, times, youscan.SplitLayout)

	assert.Equal(t, []Timestamp{
		Naive(2025, 9, 22, 6, 28, 0),
		Naive(2025, 10, 1, 23, 59, 10),
		MissingTimestamp,
		MissingTimestamp,
		MissingTimestamp,
		Naive(2025, 9, 22, 6, 0, 0),
	}, got)
}

func TestDateOnlyOverride(t *testing.T) {
	p := NewParser(profile.MustGet(profile.YouScan), true)

	got := p.ParseColumn(textValues("22.09.2025", "22.09.2025 06:28"))

	assert.Equal(t, Naive(2025, 9, 22, 0, 0, 0), got[0])
	assert.False(t, got[1].Valid)
}
