package normalize

import (
	"time"

	"github.com/juancuellarsol/ogilvy/internal/table"
)

// Names of the derived columns, in output order.
const (
	ColumnDate         = "date"
	ColumnHora         = "hora"
	ColumnHoraOriginal = "hora_original"
)

const (
	dateLayout = "1/2/2006"
	horaLayout = "3:04:05 PM"
)

// Derived holds the formatted fields of one row.
type Derived struct {
	Date         table.Value
	Hora         table.Value
	HoraOriginal table.Value
}

// DerivedColumns returns the derived column names for a profile that does or
// does not keep the unfloored hour.
func DerivedColumns(keepOriginal bool) []string {
	if keepOriginal {
		return []string{ColumnDate, ColumnHora, ColumnHoraOriginal}
	}
	return []string{ColumnDate, ColumnHora}
}

// FloorHour zeroes minutes and seconds.
func FloorHour(ts Timestamp) Timestamp {
	if !ts.Valid {
		return ts
	}
	t := ts.Time
	ts.Time = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return ts
}

// FormatDate renders month/day/year without zero padding.
func FormatDate(ts Timestamp) table.Value {
	if !ts.Valid {
		return table.Missing()
	}
	return table.String(ts.Time.Format(dateLayout))
}

// FormatHora renders a 12-hour clock with no leading zero on the hour,
// flooring to the hour first when floor is set.
func FormatHora(ts Timestamp, floor bool) table.Value {
	if !ts.Valid {
		return table.Missing()
	}
	if floor {
		ts = FloorHour(ts)
	}
	return table.String(ts.Time.Format(horaLayout))
}

// Derive computes the output fields for one timestamp.
func Derive(ts Timestamp, floor, keepOriginal bool) Derived {
	d := Derived{
		Date: FormatDate(ts),
		Hora: FormatHora(ts, floor),
	}
	if keepOriginal {
		d.HoraOriginal = FormatHora(ts, false)
	}
	return d
}

// ApplyDerived replaces any previous derived columns and places the new ones
// first, in the fixed order date, hora[, hora_original].
func ApplyDerived(t *table.Table, derived []Derived, keepOriginal bool) {
	t.DropColumns(ColumnDate, ColumnHora, ColumnHoraOriginal)

	dates := make([]table.Value, len(derived))
	horas := make([]table.Value, len(derived))
	var originals []table.Value
	if keepOriginal {
		originals = make([]table.Value, len(derived))
	}
	for i, d := range derived {
		dates[i] = d.Date
		horas[i] = d.Hora
		if keepOriginal {
			originals[i] = d.HoraOriginal
		}
	}

	columns := [][]table.Value{dates, horas}
	if keepOriginal {
		columns = append(columns, originals)
	}
	t.InsertFront(DerivedColumns(keepOriginal), columns)
}
