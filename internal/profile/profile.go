// Package profile describes the export sources the normalizer understands.
//
// A Profile is plain data: which columns may hold the timestamp, how the
// raw values are written, which columns are noise, and which columns a
// cleaned export keeps by default. The engine in package normalize is
// parametrized by a Profile; there is no per-source code path.
package profile

import "fmt"

// Strategy names the datetime parsing rule a profile uses.
type Strategy int

const (
	// LocaleAMPM handles single-column values with Spanish-locale
	// meridiem markers such as "6:05:00 p.m.".
	LocaleAMPM Strategy = iota
	// AutoDetect samples the column to choose between slash and dash
	// layouts.
	AutoDetect
	// SplitDateTime joins a "22.09.2025" date column with a "06:28" time
	// column.
	SplitDateTime
)

func (s Strategy) String() string {
	switch s {
	case LocaleAMPM:
		return "locale-ampm"
	case AutoDetect:
		return "auto-detect"
	case SplitDateTime:
		return "split-date-time"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ColumnSet is a named, versioned projection list.
type ColumnSet struct {
	Name    string
	Version int
	Columns []string
}

func (c ColumnSet) clone() ColumnSet {
	c.Columns = append([]string(nil), c.Columns...)
	return c
}

// Profile is the immutable configuration of one export source.
type Profile struct {
	Key         string
	Label       string
	Description string
	Strategy    Strategy

	// DefaultCreatedColumn is the preferred timestamp column when the caller
	// gives none.
	DefaultCreatedColumn string
	Candidates           []string
	Keywords             []string

	// Split profiles only.
	DefaultDateColumn string
	DefaultTimeColumn string
	DateCandidates    []string
	TimeCandidates    []string
	DateKeywords      []string
	TimeKeywords      []string
	// SplitLayout is the Go layout of "<date> <time>".
	SplitLayout string
	// DateOnlyLayout parses a created-column override on split profiles.
	DateOnlyLayout string

	DayFirst         bool
	FloorToHour      bool
	KeepOriginalHora bool

	DropColumns    []string
	DefaultColumns ColumnSet
}

// IsSplit reports whether the timestamp spans two columns.
func (p Profile) IsSplit() bool {
	return p.Strategy == SplitDateTime
}

// Clone returns a copy that shares no slices with p.
func (p Profile) Clone() Profile {
	p.Candidates = cloneStrings(p.Candidates)
	p.Keywords = cloneStrings(p.Keywords)
	p.DateCandidates = cloneStrings(p.DateCandidates)
	p.TimeCandidates = cloneStrings(p.TimeCandidates)
	p.DateKeywords = cloneStrings(p.DateKeywords)
	p.TimeKeywords = cloneStrings(p.TimeKeywords)
	p.DropColumns = cloneStrings(p.DropColumns)
	p.DefaultColumns = p.DefaultColumns.clone()
	return p
}

// Defaults returns a fresh copy of the default projection list.
func (p Profile) Defaults() ColumnSet {
	return p.DefaultColumns.clone()
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
