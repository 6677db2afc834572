package normalize

import (
	"strings"

	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
	"github.com/juancuellarsol/ogilvy/internal/profile"
)

// SplitColumns names the two halves of a split timestamp.
type SplitColumns struct {
	Date string
	Time string
}

// ResolveColumn finds the timestamp column of a single-column profile.
// First match wins: the preferred name, then the profile candidates, then
// the first column (in declaration order) containing a keyword.
func ResolveColumn(columns []string, preferred string, p profile.Profile) (string, error) {
	name, ok := resolve(columns, preferred, p.Candidates, p.Keywords, "")
	if !ok {
		return "", apperrors.NewColumnNotFoundError(p.Key, "timestamp", columns)
	}
	return name, nil
}

// ResolveSplit finds the date and time columns of a split profile. The time
// side never reuses the column chosen for the date side.
func ResolveSplit(columns []string, dateCol, timeCol string, p profile.Profile) (SplitColumns, error) {
	if dateCol == "" {
		dateCol = p.DefaultDateColumn
	}
	if timeCol == "" {
		timeCol = p.DefaultTimeColumn
	}
	date, ok := resolve(columns, dateCol, p.DateCandidates, p.DateKeywords, "")
	if !ok {
		return SplitColumns{}, apperrors.NewColumnNotFoundError(p.Key, "date", columns)
	}
	tm, ok := resolve(columns, timeCol, p.TimeCandidates, p.TimeKeywords, date)
	if !ok {
		return SplitColumns{}, apperrors.NewColumnNotFoundError(p.Key, "time", columns)
	}
	return SplitColumns{Date: date, Time: tm}, nil
}

func resolve(columns []string, preferred string, candidates, keywords []string, exclude string) (string, bool) {
	usable := func(c string) bool { return c != exclude || exclude == "" }

	if preferred = strings.TrimSpace(preferred); preferred != "" {
		for _, c := range columns {
			if strings.TrimSpace(c) == preferred && usable(c) {
				return c, true
			}
		}
		for _, c := range columns {
			if strings.EqualFold(strings.TrimSpace(c), preferred) && usable(c) {
				return c, true
			}
		}
	}

	for _, cand := range candidates {
		for _, c := range columns {
			if strings.TrimSpace(c) == cand && usable(c) {
				return c, true
			}
		}
	}

	for _, c := range columns {
		if !usable(c) {
			continue
		}
		lower := strings.ToLower(c)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return c, true
			}
		}
	}
	return "", false
}
