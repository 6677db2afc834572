package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juancuellarsol/ogilvy/internal/table"
)

func TestFormatDateAndHora(t *testing.T) {
	tests := []struct {
		name  string
		ts    Timestamp
		floor bool
		date  string
		hora  string
	}{
		{name: "afternoon", ts: Naive(2025, 9, 5, 18, 5, 0), date: "9/5/2025", hora: "6:05:00 PM"},
		{name: "morning", ts: Naive(2025, 9, 22, 6, 28, 0), date: "9/22/2025", hora: "6:28:00 AM"},
		{name: "floored", ts: Naive(2025, 12, 31, 20, 7, 0), floor: true, date: "12/31/2025", hora: "8:00:00 PM"},
		{name: "floored end of hour", ts: Naive(2025, 1, 1, 20, 59, 59), floor: true, date: "1/1/2025", hora: "8:00:00 PM"},
		{name: "noon", ts: Naive(2025, 1, 1, 12, 0, 0), date: "1/1/2025", hora: "12:00:00 PM"},
		{name: "midnight", ts: Naive(2025, 1, 1, 0, 0, 0), date: "1/1/2025", hora: "12:00:00 AM"},
		{name: "one am", ts: Naive(2025, 1, 1, 1, 0, 0), date: "1/1/2025", hora: "1:00:00 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := FormatDate(tt.ts).Text()
			hora := FormatHora(tt.ts, tt.floor).Text()
			assert.Equal(t, tt.date, date)
			assert.Equal(t, tt.hora, hora)

			assert.False(t, strings.HasPrefix(hora, "0"))
			for _, part := range strings.Split(date, "/") {
				assert.False(t, strings.HasPrefix(part, "0"), "zero padded %q", date)
			}
			assert.True(t, strings.HasSuffix(hora, " AM") || strings.HasSuffix(hora, " PM"))
		})
	}
}

func TestFloorHourIsIdempotent(t *testing.T) {
	ts := Naive(2025, 9, 5, 20, 7, 33)
	once := FloorHour(ts)
	twice := FloorHour(once)

	assert.Equal(t, once, twice)
	assert.Equal(t, FormatHora(ts, true), FormatHora(once, true))
	assert.Equal(t, MissingTimestamp, FloorHour(MissingTimestamp))
}

func TestDerive_Missing(t *testing.T) {
	d := Derive(MissingTimestamp, true, true)

	assert.True(t, d.Date.IsMissing())
	assert.True(t, d.Hora.IsMissing())
	assert.True(t, d.HoraOriginal.IsMissing())
}

func TestDerive_KeepsOriginalHora(t *testing.T) {
	d := Derive(Naive(2025, 9, 22, 6, 28, 0), true, true)

	assert.Equal(t, "6:00:00 AM", d.Hora.Text())
	assert.Equal(t, "6:28:00 AM", d.HoraOriginal.Text())
}

func TestApplyDerived_ReplacesAndOrders(t *testing.T) {
	tbl := table.FromRecords(
		[]string{"Message", "hora", "date"},
		[][]string{{"hola", "old", "old"}, {"chao", "old", "old"}},
	)
	derived := []Derived{
		Derive(Naive(2025, 9, 5, 18, 5, 0), false, true),
		Derive(MissingTimestamp, false, true),
	}

	ApplyDerived(tbl, derived, true)
	ApplyDerived(tbl, derived, true)

	require.Equal(t, []string{"date", "hora", "hora_original", "Message"}, tbl.Columns)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "9/5/2025", tbl.Rows[0].Get("date").Text())
	assert.Equal(t, "6:05:00 PM", tbl.Rows[0].Get("hora_original").Text())
	assert.True(t, tbl.Rows[1].Get("hora").IsMissing())

	ApplyDerived(tbl, derived, false)
	assert.Equal(t, []string{"date", "hora", "Message"}, tbl.Columns)
}
